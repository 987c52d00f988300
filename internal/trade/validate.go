package trade

import (
	"errors"
	"fmt"

	"github.com/zappabad/poketrade/internal/creature"
)

var (
	ErrNothingToTrade   = errors.New("trade offers and requests nothing")
	ErrMissingParty     = errors.New("missing sender or receiver")
	ErrTooManyCreatures = errors.New("too many creatures on one side")
	ErrDuplicateID      = errors.New("duplicate creature id on one side")
)

// Validate checks a creation request before it leaves the client. The
// non-empty rule is checked first, then the receiver, then per-side shape.
func (r CreateRequest) Validate() error {
	if len(r.OfferedIDs) == 0 && len(r.WantedIDs) == 0 {
		return ErrNothingToTrade
	}
	if r.ReceiverID <= 0 {
		return ErrMissingParty
	}
	if err := validateSide(SideOffered, r.OfferedIDs); err != nil {
		return err
	}
	return validateSide(SideWanted, r.WantedIDs)
}

func validateSide(side Side, ids []creature.ID) error {
	if len(ids) > SlotCap {
		return fmt.Errorf("%w: %s has %d, max %d", ErrTooManyCreatures, side, len(ids), SlotCap)
	}
	seen := make(map[creature.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s repeats %d", ErrDuplicateID, side, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Validate checks a trade record received from the server. Records that
// break the slot cap are still displayed, so callers treat this as advisory.
func (t Trade) Validate() error {
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, t.Status)
	}
	if err := validateSide(SideOffered, t.Sender.Creatures); err != nil {
		return err
	}
	return validateSide(SideWanted, t.Receiver.Creatures)
}
