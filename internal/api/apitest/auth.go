package apitest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/trainer"
)

// TokenExpiry is the lifetime of issued access tokens.
const TokenExpiry = 24 * time.Hour

const ctxTrainer = "trainer"

// Token issues an access token for the trainer, as /login would.
func (s *Server) Token(id trainer.ID) string {
	tok, err := s.issue(id, time.Now().Add(TokenExpiry))
	if err != nil {
		panic(err)
	}
	return tok
}

func (s *Server) issue(id trainer.ID, exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *Server) verify(tokenStr string) (trainer.ID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parsing token: %w", err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing subject: %w", err)
	}
	return trainer.ID(id), nil
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing bearer token"})
			return
		}

		id, err := s.verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		s.mu.Lock()
		_, known := s.trainers[id]
		s.mu.Unlock()
		if !known {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unknown trainer"})
			return
		}

		c.Set(ctxTrainer, id)
		c.Next()
	}
}

func caller(c *gin.Context) trainer.ID {
	id, _ := c.Get(ctxTrainer)
	tid, _ := id.(trainer.ID)
	return tid
}

func (s *Server) login(c *gin.Context) {
	var req api.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	var found *account
	for _, a := range s.trainers {
		if a.Login == req.Login {
			found = a
			break
		}
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid login or password"})
		return
	}

	s.respondAuth(c, http.StatusOK, found.ID)
}

func (s *Server) subscribe(c *gin.Context) {
	var req api.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Login == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Login and password are required"})
		return
	}

	s.mu.Lock()
	for _, a := range s.trainers {
		if a.Login == req.Login {
			s.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"message": "Login already taken"})
			return
		}
	}
	s.mu.Unlock()

	t := s.AddTrainer(trainer.Trainer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Login:     req.Login,
		BirthDate: req.BirthDate,
	}, req.Password)

	s.respondAuth(c, http.StatusCreated, t.ID)
}

func (s *Server) respondAuth(c *gin.Context, status int, id trainer.ID) {
	tok, err := s.issue(id, time.Now().Add(TokenExpiry))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, api.Auth{AccessToken: tok, TrainerID: id})
}
