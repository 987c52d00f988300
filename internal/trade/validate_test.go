package trade

import (
	"errors"
	"testing"

	"github.com/zappabad/poketrade/internal/creature"
)

func TestCreateRequestValidate(t *testing.T) {
	req := CreateRequest{ReceiverID: 2, OfferedIDs: []creature.ID{10}, WantedIDs: []creature.ID{}}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := CreateRequest{ReceiverID: 2}
	if err := empty.Validate(); !errors.Is(err, ErrNothingToTrade) {
		t.Errorf("expected ErrNothingToTrade, got %v", err)
	}

	// The non-empty rule is reported before the missing receiver.
	if err := (CreateRequest{}).Validate(); !errors.Is(err, ErrNothingToTrade) {
		t.Errorf("expected ErrNothingToTrade first, got %v", err)
	}

	noReceiver := CreateRequest{WantedIDs: []creature.ID{3}}
	if err := noReceiver.Validate(); !errors.Is(err, ErrMissingParty) {
		t.Errorf("expected ErrMissingParty, got %v", err)
	}

	dup := CreateRequest{ReceiverID: 2, OfferedIDs: []creature.ID{1, 1}}
	if err := dup.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	tooMany := CreateRequest{ReceiverID: 2, WantedIDs: []creature.ID{1, 2, 3, 4, 5, 6, 7}}
	if err := tooMany.Validate(); !errors.Is(err, ErrTooManyCreatures) {
		t.Errorf("expected ErrTooManyCreatures, got %v", err)
	}
}

func TestTradeValidate(t *testing.T) {
	tr := Trade{
		ID:       1,
		Status:   StatusProposition,
		Sender:   Party{ID: 1, Creatures: []creature.ID{1, 2}},
		Receiver: Party{ID: 2, Creatures: []creature.ID{3}},
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Party(SideWanted).ID != 2 {
		t.Errorf("expected wanted side to belong to receiver")
	}
	if !tr.Involves(1) || tr.Involves(9) {
		t.Errorf("unexpected Involves result")
	}

	tr.Status = "PENDING"
	if err := tr.Validate(); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}
