package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zappabad/poketrade/internal/trainer"
)

var (
	// ErrNoSession is returned when no cached session exists.
	ErrNoSession = errors.New("no session")
	// ErrExpired is returned when the cached token has expired. It matches ErrNoSession.
	ErrExpired = fmt.Errorf("%w: token expired", ErrNoSession)
)

// Session is the authenticated identity of the local trainer. It is a value:
// login and logout replace it, nothing mutates it in place.
type Session struct {
	Token     string
	TrainerID trainer.ID
}

func New(token string, id trainer.ID) Session {
	return Session{Token: token, TrainerID: id}
}

// Authenticated reports whether requests can carry a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// HasTrainer reports whether the session knows which trainer it belongs to.
func (s Session) HasTrainer() bool {
	return s.TrainerID > 0
}

// Expired reports whether the token is a JWT whose exp claim is before now.
// Tokens that are not JWTs, or carry no exp, never expire client-side.
func (s Session) Expired(now time.Time) bool {
	exp, ok := ExpiresAt(s.Token)
	return ok && !exp.After(now)
}

// ExpiresAt extracts the exp claim without verifying the signature. The
// server stays the authority; this only avoids sending a token known to be stale.
func ExpiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
