package tui

import (
	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/internal/trainer"
)

// remoteResult is implemented by every message carrying the outcome of an
// authenticated request, so a revoked credential can be handled in one place.
type remoteResult interface {
	failure() error
}

// loginResultMsg is not a remoteResult: a 401 there means bad credentials.
type loginResultMsg struct {
	auth api.Auth
	err  error
}

type directoryPageMsg struct {
	screen uint64
	gen    uint64
	items  []trade.ListItem
	err    error
}

type detailTradeMsg struct {
	screen uint64
	gen    uint64
	trade  trade.Trade
	err    error
}

type detailSideMsg struct {
	screen   uint64
	gen      uint64
	side     trade.Side
	resolved []creature.Resolved
}

type detailTrainerMsg struct {
	screen  uint64
	gen     uint64
	id      trainer.ID
	trainer *trainer.Trainer
	err     error
}

type respondResultMsg struct {
	screen uint64
	gen    uint64
	err    error
}

type receiverMsg struct {
	screen  uint64
	trainer trainer.Trainer
	err     error
}

type poolMsg struct {
	screen  uint64
	request view.PickerRequest
	pool    []creature.ListItem
	err     error
}

type selectionMsg struct {
	screen   uint64
	side     trade.Side
	slot     int
	creature creature.Creature
	err      error
}

type submitResultMsg struct {
	screen  uint64
	created trade.Created
	err     error
}

type searchResultMsg struct {
	screen uint64
	items  []trainer.ListItem
	err    error
}

func (m directoryPageMsg) failure() error { return m.err }
func (m detailTradeMsg) failure() error   { return m.err }
func (m detailTrainerMsg) failure() error { return m.err }
func (m respondResultMsg) failure() error { return m.err }
func (m receiverMsg) failure() error      { return m.err }
func (m poolMsg) failure() error          { return m.err }
func (m selectionMsg) failure() error     { return m.err }
func (m submitResultMsg) failure() error  { return m.err }
func (m searchResultMsg) failure() error  { return m.err }
