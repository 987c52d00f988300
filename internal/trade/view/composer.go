package view

import (
	"errors"
	"fmt"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/session"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

type ComposerState uint8

const (
	ComposerLoading ComposerState = iota
	ComposerReady
	ComposerSubmitting
	ComposerDone
	ComposerUnavailable
)

func (s ComposerState) String() string {
	switch s {
	case ComposerLoading:
		return "loading"
	case ComposerReady:
		return "ready"
	case ComposerSubmitting:
		return "submitting"
	case ComposerDone:
		return "done"
	case ComposerUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Composer builds one trade proposal. It is owned by a single event loop and
// is not safe for concurrent use.
type Composer struct {
	session    session.Session
	receiverID trainer.ID
	receiver   *trainer.Trainer

	offered trade.Slots
	wanted  trade.Slots

	state ComposerState
	err   errorRegion
	route *Route

	// picks resolved while a submit is in flight; placed if it fails
	held []heldSelection
}

type heldSelection struct {
	side     trade.Side
	slot     int
	creature creature.Creature
}

// NewComposer starts a composer for the given receiver. A nil receiver leaves
// the composer unavailable.
func NewComposer(sess session.Session, receiverID *trainer.ID) *Composer {
	c := &Composer{session: sess}
	if receiverID == nil || *receiverID <= 0 {
		c.state = ComposerUnavailable
		c.err.set(errPrecondition, MsgReceiverNotInURL)
		return c
	}
	c.receiverID = *receiverID
	c.state = ComposerLoading
	return c
}

func (c *Composer) State() ComposerState { return c.state }

// Err is the single error region, empty when there is nothing to show.
func (c *Composer) Err() string { return c.err.text }

func (c *Composer) ReceiverID() (trainer.ID, bool) { return c.receiverID, c.receiverID > 0 }

func (c *Composer) Receiver() *trainer.Trainer { return c.receiver }

func (c *Composer) ReceiverName() string {
	if c.receiver != nil {
		return c.receiver.DisplayName()
	}
	return trainer.FallbackName(c.receiverID)
}

// Slots returns a copy of one side.
func (c *Composer) Slots(side trade.Side) trade.Slots {
	return *c.side(side)
}

func (c *Composer) side(side trade.Side) *trade.Slots {
	if side == trade.SideWanted {
		return &c.wanted
	}
	return &c.offered
}

func (c *Composer) CanSubmit() bool { return c.state == ComposerReady }

// Route is set once the proposal was created.
func (c *Composer) Route() (Route, bool) {
	if c.route == nil {
		return Route{}, false
	}
	return *c.route, true
}

// ApplyReceiver records the outcome of the receiver lookup. Only the first call
// has an effect.
func (c *Composer) ApplyReceiver(t trainer.Trainer, err error) bool {
	if c.state != ComposerLoading {
		return false
	}
	if err != nil {
		c.state = ComposerUnavailable
		c.err.set(errRemote, api.Message(err))
		return true
	}
	c.receiver = &t
	c.state = ComposerReady
	return true
}

// OpenPicker describes the pool a slot picks from: the session trainer's
// creatures for the offered side, the receiver's for the wanted side.
func (c *Composer) OpenPicker(side trade.Side, slot int) (PickerRequest, error) {
	if c.state == ComposerSubmitting {
		return PickerRequest{}, ErrBusy
	}
	if c.state != ComposerReady {
		return PickerRequest{}, ErrNotReady
	}
	if slot < 0 || slot >= trade.SlotCap {
		return PickerRequest{}, fmt.Errorf("%w: %d", trade.ErrSlotRange, slot)
	}

	owner := c.receiverID
	if side == trade.SideOffered {
		if !c.session.HasTrainer() {
			c.err.set(errPrecondition, MsgTrainerNotFound)
			return PickerRequest{}, ErrNoTrainer
		}
		owner = c.session.TrainerID
	}

	return PickerRequest{
		Side:    side,
		Slot:    slot,
		OwnerID: owner,
		Exclude: c.side(side).IDs(),
	}, nil
}

// ApplySelection stores a resolved creature in its slot. A failed lookup only
// updates the error region. A pick that resolves while a submit is in flight
// is held back so the slots keep matching the request being sent; it lands
// only if that submit fails. A lookup that fails mid-submit returns ErrBusy.
func (c *Composer) ApplySelection(side trade.Side, slot int, cr creature.Creature, err error) error {
	if c.state == ComposerSubmitting {
		if err != nil {
			return ErrBusy
		}
		c.held = append(c.held, heldSelection{side: side, slot: slot, creature: cr})
		return nil
	}
	if c.state != ComposerReady {
		return ErrNotReady
	}
	if err != nil {
		c.err.set(errRemote, api.Message(err))
		return nil
	}

	if err := c.place(side, slot, cr); err != nil {
		return err
	}
	c.err.clear()
	return nil
}

func (c *Composer) place(side trade.Side, slot int, cr creature.Creature) error {
	if err := c.side(side).Set(slot, cr); err != nil {
		if errors.Is(err, trade.ErrDuplicateCreature) {
			c.err.set(errValidation, MsgAlreadySelected)
			return ErrAlreadySelected
		}
		return err
	}
	return nil
}

// Held reports how many picks are waiting on the in-flight submit.
func (c *Composer) Held() int { return len(c.held) }

// Remove empties a slot and clears the error region. It reports whether
// anything changed; removing from an empty slot changes nothing, not even the
// error region. Slots are frozen while a submit is in flight.
func (c *Composer) Remove(side trade.Side, slot int) bool {
	if c.state == ComposerDone || c.state == ComposerSubmitting {
		return false
	}
	if !c.side(side).Clear(slot) {
		return false
	}
	c.err.clear()
	return true
}

// PrepareSubmit validates the proposal and, when valid, enters Submitting and
// returns the request to send.
func (c *Composer) PrepareSubmit() (trade.CreateRequest, error) {
	switch c.state {
	case ComposerSubmitting:
		return trade.CreateRequest{}, ErrBusy
	case ComposerReady:
	default:
		return trade.CreateRequest{}, ErrNotReady
	}

	if c.offered.Empty() && c.wanted.Empty() {
		c.err.set(errValidation, MsgEmptyTrade)
		return trade.CreateRequest{}, ErrEmptyTrade
	}
	if !c.session.HasTrainer() || c.receiverID <= 0 {
		c.err.set(errValidation, MsgMissingParties)
		return trade.CreateRequest{}, ErrMissingParties
	}

	req := trade.CreateRequest{
		ReceiverID: c.receiverID,
		OfferedIDs: c.offered.IDs(),
		WantedIDs:  c.wanted.IDs(),
	}
	if err := req.Validate(); err != nil {
		return trade.CreateRequest{}, err
	}

	c.err.clear()
	c.state = ComposerSubmitting
	return req, nil
}

// ApplySubmitResult finishes a submission. Failures return to Ready with the
// submitted slots intact so the user can retry; held picks are placed then,
// keeping the submit error on screen.
func (c *Composer) ApplySubmitResult(created trade.Created, err error) bool {
	if c.state != ComposerSubmitting {
		return false
	}
	held := c.held
	c.held = nil
	if err != nil {
		c.state = ComposerReady
		c.err.set(errRemote, api.Message(err))
		for _, h := range held {
			_ = c.side(h.side).Set(h.slot, h.creature)
		}
		return true
	}
	r := DetailRoute(created.ID)
	c.route = &r
	c.state = ComposerDone
	c.err.clear()
	return true
}
