package view

import (
	"fmt"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/session"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

type DetailState uint8

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailReady
	DetailFailed
	DetailUpdating
	DetailDone
)

func (s DetailState) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailLoading:
		return "loading"
	case DetailReady:
		return "ready"
	case DetailFailed:
		return "failed"
	case DetailUpdating:
		return "updating"
	case DetailDone:
		return "done"
	default:
		return "unknown"
	}
}

// Prompt is the confirmation question for a decision.
func Prompt(decision trade.Status) string {
	return fmt.Sprintf("Are you sure you want to %s this trade?", decision.Verb())
}

type sideState struct {
	loaded    bool
	creatures []creature.Resolved
}

type partyState struct {
	settled bool
	trainer *trainer.Trainer
}

// Detail shows one trade and lets its receiver answer it. Every load is tagged
// with a generation; results from an older generation, or arriving after Close,
// are dropped.
type Detail struct {
	session session.Session

	gen    uint64
	closed bool

	id    trade.ID
	state DetailState
	trade *trade.Trade

	sides   [2]sideState
	parties [2]partyState

	pending  trade.Status
	decision trade.Status

	err   errorRegion
	route *Route
}

func NewDetail(sess session.Session) *Detail {
	return &Detail{session: sess}
}

// Begin starts loading a trade and returns the generation results must carry.
func (d *Detail) Begin(id trade.ID) uint64 {
	gen := d.gen + 1
	*d = Detail{session: d.session, gen: gen, id: id, state: DetailLoading}
	return gen
}

// Close tears the view down. Later results are ignored.
func (d *Detail) Close() {
	d.closed = true
	d.gen++
}

func (d *Detail) Generation() uint64 { return d.gen }

func (d *Detail) current(gen uint64) bool {
	return !d.closed && gen == d.gen
}

func (d *Detail) State() DetailState { return d.state }

func (d *Detail) ID() trade.ID { return d.id }

func (d *Detail) Err() string { return d.err.text }

// Trade returns the loaded record, or nil before it arrives.
func (d *Detail) Trade() *trade.Trade { return d.trade }

// Creatures returns a side's resolved creatures and whether they have settled.
func (d *Detail) Creatures(side trade.Side) ([]creature.Resolved, bool) {
	s := d.sides[side]
	return s.creatures, s.loaded
}

// Name is the party's display name, or "Trainer ID: n" until (or unless) the
// trainer resolves.
func (d *Detail) Name(side trade.Side) string {
	if d.trade == nil {
		return ""
	}
	if t := d.parties[side].trainer; t != nil {
		return t.DisplayName()
	}
	return trainer.FallbackName(d.trade.Party(side).ID)
}

// Hydrated reports whether every sub-fetch has settled.
func (d *Detail) Hydrated() bool {
	return d.trade != nil &&
		d.sides[trade.SideOffered].loaded && d.sides[trade.SideWanted].loaded &&
		d.parties[trade.SideOffered].settled && d.parties[trade.SideWanted].settled
}

func (d *Detail) Route() (Route, bool) {
	if d.route == nil {
		return Route{}, false
	}
	return *d.route, true
}

// ApplyTrade records the fetched trade.
func (d *Detail) ApplyTrade(gen uint64, t trade.Trade, err error) bool {
	if !d.current(gen) || d.state != DetailLoading {
		return false
	}
	if err != nil {
		d.state = DetailFailed
		d.err.set(errRemote, api.Message(err))
		return true
	}
	d.trade = &t
	d.state = DetailReady
	return true
}

// ApplySide merges one side's settled creatures. Sides may arrive in any order.
func (d *Detail) ApplySide(gen uint64, side trade.Side, resolved []creature.Resolved) bool {
	if !d.current(gen) || d.trade == nil {
		return false
	}
	d.sides[side] = sideState{loaded: true, creatures: resolved}
	return true
}

// ApplyTrainer merges one party. A failure keeps the fallback name and never
// touches the error region.
func (d *Detail) ApplyTrainer(gen uint64, id trainer.ID, t *trainer.Trainer, err error) bool {
	if !d.current(gen) || d.trade == nil {
		return false
	}
	applied := false
	for _, side := range []trade.Side{trade.SideOffered, trade.SideWanted} {
		if d.trade.Party(side).ID != id {
			continue
		}
		d.parties[side].settled = true
		if err == nil && t != nil {
			d.parties[side].trainer = t
		}
		applied = true
	}
	return applied
}

// ShowsActions reports whether accept/decline belong on screen: the viewer is
// the receiver and the trade is still a proposition.
func (d *Detail) ShowsActions() bool {
	return d.trade != nil &&
		d.session.HasTrainer() &&
		d.session.TrainerID == d.trade.Receiver.ID &&
		d.trade.Status == trade.StatusProposition &&
		d.state != DetailDone
}

// CanRespond is ShowsActions minus an update already in flight.
func (d *Detail) CanRespond() bool {
	return d.ShowsActions() && d.state == DetailReady
}

// Pending returns the decision awaiting confirmation.
func (d *Detail) Pending() (trade.Status, bool) {
	return d.pending, d.pending != ""
}

// RequestResponse asks for confirmation of a decision and returns the prompt.
func (d *Detail) RequestResponse(decision trade.Status) (string, error) {
	if d.state == DetailUpdating {
		return "", ErrBusy
	}
	if !d.CanRespond() {
		return "", ErrNotAllowed
	}
	if !decision.IsDecision() {
		return "", fmt.Errorf("%w: %q", trade.ErrInvalidTransition, decision)
	}
	d.pending = decision
	return Prompt(decision), nil
}

// Cancel drops the pending decision.
func (d *Detail) Cancel() {
	d.pending = ""
}

// Confirm commits the pending decision and returns the update to send.
func (d *Detail) Confirm() (trade.ID, trade.UpdateRequest, error) {
	if d.state == DetailUpdating {
		return 0, trade.UpdateRequest{}, ErrBusy
	}
	if d.pending == "" {
		return 0, trade.UpdateRequest{}, ErrNoPending
	}
	if !d.CanRespond() {
		d.pending = ""
		return 0, trade.UpdateRequest{}, ErrNotAllowed
	}
	if err := trade.Transition(d.trade.Status, d.pending); err != nil {
		d.pending = ""
		return 0, trade.UpdateRequest{}, err
	}

	req, err := trade.NewUpdate(d.pending)
	if err != nil {
		return 0, trade.UpdateRequest{}, err
	}

	d.decision = d.pending
	d.pending = ""
	d.state = DetailUpdating
	d.err.clear()
	return d.trade.ID, req, nil
}

// ApplyResponse finishes an update. Success routes to the directory; failure
// keeps the last known status and re-enables the actions.
func (d *Detail) ApplyResponse(gen uint64, err error) bool {
	if !d.current(gen) || d.state != DetailUpdating {
		return false
	}
	if err != nil {
		d.state = DetailReady
		d.decision = ""
		d.err.set(errRemote, api.Message(err))
		return true
	}
	d.trade.Status = d.decision
	d.state = DetailDone
	r := DirectoryRoute()
	d.route = &r
	return true
}
