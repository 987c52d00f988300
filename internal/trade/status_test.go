package trade

import (
	"errors"
	"testing"
)

func TestTransitionsFromProposition(t *testing.T) {
	for _, to := range []Status{StatusAccepted, StatusDeclined} {
		if err := Transition(StatusProposition, to); err != nil {
			t.Errorf("PROPOSITION -> %s: unexpected error: %v", to, err)
		}
		if !StatusProposition.CanTransition(to) {
			t.Errorf("expected PROPOSITION -> %s to be allowed", to)
		}
	}

	if err := Transition(StatusProposition, StatusProposition); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for PROPOSITION -> PROPOSITION, got %v", err)
	}
}

func TestTerminalStatusesNeverTransition(t *testing.T) {
	for _, from := range []Status{StatusAccepted, StatusDeclined} {
		if !from.Terminal() {
			t.Errorf("expected %s to be terminal", from)
		}
		for _, to := range Statuses {
			if from.CanTransition(to) {
				t.Errorf("expected %s -> %s to be refused", from, to)
			}
			if err := Transition(from, to); !errors.Is(err, ErrTerminalStatus) {
				t.Errorf("%s -> %s: expected ErrTerminalStatus, got %v", from, to, err)
			}
		}
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	if err := Transition("PENDING", StatusAccepted); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
	if err := Transition(StatusProposition, "CANCELED"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" declined ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != StatusDeclined {
		t.Errorf("expected DECLINED, got %s", st)
	}

	if _, err := ParseStatus("expired"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestNewUpdate(t *testing.T) {
	req, err := NewUpdate(StatusDeclined)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != StatusDeclined {
		t.Errorf("expected DECLINED, got %s", req.Status)
	}

	if _, err := NewUpdate(StatusProposition); err == nil {
		t.Error("expected PROPOSITION to be rejected as a decision")
	}
}

func TestStatusVerb(t *testing.T) {
	if StatusAccepted.Verb() != "accept" {
		t.Errorf("expected accept, got %q", StatusAccepted.Verb())
	}
	if StatusDeclined.Verb() != "decline" {
		t.Errorf("expected decline, got %q", StatusDeclined.Verb())
	}
}
