package view

import (
	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/session"
	"github.com/zappabad/poketrade/internal/trade"
)

// Directory pages through the session trainer's trades.
type Directory struct {
	session session.Session
	params  trade.ListParams

	gen     uint64
	loading bool
	items   []trade.ListItem
	err     errorRegion
}

func NewDirectory(sess session.Session, pageSize int) *Directory {
	if pageSize <= 0 {
		pageSize = trade.DefaultPageSize
	}
	return &Directory{
		session: sess,
		params:  trade.ListParams{PageSize: pageSize, OrderBy: trade.OrderDesc},
	}
}

func (d *Directory) Params() trade.ListParams { return d.params }

func (d *Directory) Items() []trade.ListItem { return d.items }

func (d *Directory) Loading() bool { return d.loading }

func (d *Directory) Err() string { return d.err.text }

// Begin starts loading the current page. It fails without a session trainer.
func (d *Directory) Begin() (trade.ListParams, uint64, error) {
	if !d.session.HasTrainer() {
		d.err.set(errPrecondition, MsgTrainerNotFound)
		d.loading = false
		return trade.ListParams{}, d.gen, ErrNoTrainer
	}
	d.gen++
	d.loading = true
	return d.params, d.gen, nil
}

// ApplyPage stores a fetched page; results for older requests are dropped.
func (d *Directory) ApplyPage(gen uint64, items []trade.ListItem, err error) bool {
	if gen != d.gen || !d.loading {
		return false
	}
	d.loading = false
	if err != nil {
		d.err.set(errRemote, api.Message(err))
		return true
	}
	d.items = items
	d.err.clear()
	return true
}

// SetStatus filters by status (empty means all) and returns to the first page.
func (d *Directory) SetStatus(s trade.Status) {
	d.params.Status = s
	d.params.Page = 0
}

// CycleStatus steps through all, PROPOSITION, ACCEPTED, DECLINED.
func (d *Directory) CycleStatus() {
	next := trade.Status("")
	switch d.params.Status {
	case "":
		next = trade.StatusProposition
	case trade.StatusProposition:
		next = trade.StatusAccepted
	case trade.StatusAccepted:
		next = trade.StatusDeclined
	}
	d.SetStatus(next)
}

// ToggleOrder flips the sort direction and returns to the first page.
func (d *Directory) ToggleOrder() {
	d.params.OrderBy = d.params.OrderBy.Toggle()
	d.params.Page = 0
}

// CanNext is true only when the last page came back full.
func (d *Directory) CanNext() bool {
	return len(d.items) == d.params.PageSize
}

func (d *Directory) CanPrev() bool { return d.params.Page > 0 }

// Next advances a page and reports whether a reload is needed.
func (d *Directory) Next() bool {
	if !d.CanNext() {
		return false
	}
	d.params.Page++
	return true
}

// Prev goes back a page, never below the first.
func (d *Directory) Prev() bool {
	if !d.CanPrev() {
		return false
	}
	d.params.Page--
	return true
}
