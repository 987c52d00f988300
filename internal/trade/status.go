package trade

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a trade.
type Status string

const (
	StatusProposition Status = "PROPOSITION"
	StatusAccepted    Status = "ACCEPTED"
	StatusDeclined    Status = "DECLINED"
)

var (
	ErrUnknownStatus     = errors.New("unknown trade status")
	ErrTerminalStatus    = errors.New("trade status is terminal")
	ErrInvalidTransition = errors.New("invalid trade status transition")
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusProposition, StatusAccepted, StatusDeclined}

// ParseStatus accepts any casing of a known status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusProposition, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// IsDecision reports whether s is a status a receiver may respond with.
func (s Status) IsDecision() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// CanTransition reports whether s -> to is a defined transition.
// Only PROPOSITION -> ACCEPTED and PROPOSITION -> DECLINED exist.
func (s Status) CanTransition(to Status) bool {
	return s == StatusProposition && to.IsDecision()
}

// Transition validates from -> to.
func Transition(from, to Status) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if from.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, from)
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// NewUpdate builds the PATCH body for a receiver decision.
func NewUpdate(decision Status) (UpdateRequest, error) {
	if !decision.IsDecision() {
		return UpdateRequest{}, fmt.Errorf("%w: %q is not a decision", ErrInvalidTransition, decision)
	}
	return UpdateRequest{Status: decision}, nil
}

// Verb is the lower-case action word used in prompts.
func (s Status) Verb() string {
	switch s {
	case StatusAccepted:
		return "accept"
	case StatusDeclined:
		return "decline"
	default:
		return strings.ToLower(string(s))
	}
}
