package view

import (
	"fmt"
	"slices"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

// PickerRequest describes which pool to load and where the choice goes.
type PickerRequest struct {
	Side    trade.Side
	Slot    int
	OwnerID trainer.ID
	Exclude []creature.ID
}

// Option is one row of the picker.
type Option struct {
	Item     creature.ListItem
	Disabled bool
}

// PickerOptions marks every pool entry already on the side as disabled.
func PickerOptions(pool []creature.ListItem, exclude []creature.ID) []Option {
	out := make([]Option, len(pool))
	for i, item := range pool {
		out[i] = Option{Item: item, Disabled: slices.Contains(exclude, item.ID)}
	}
	return out
}

// Picker is the selection surface for a single slot.
type Picker struct {
	Request PickerRequest
	options []Option
	cursor  int
}

func NewPicker(req PickerRequest, pool []creature.ListItem) *Picker {
	p := &Picker{Request: req, options: PickerOptions(pool, req.Exclude)}
	p.cursor = p.nextEnabled(0, 1)
	return p
}

func (p *Picker) Options() []Option { return p.options }

func (p *Picker) Cursor() int { return p.cursor }

// Selectable counts the options that can still be chosen.
func (p *Picker) Selectable() int {
	n := 0
	for _, o := range p.options {
		if !o.Disabled {
			n++
		}
	}
	return n
}

// Move shifts the cursor by delta, skipping disabled rows.
func (p *Picker) Move(delta int) {
	if len(p.options) == 0 || delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	start := p.cursor + delta
	start = max(0, min(start, len(p.options)-1))
	if next := p.nextEnabled(start, step); next >= 0 {
		p.cursor = next
	}
}

func (p *Picker) nextEnabled(from, step int) int {
	for i := from; i >= 0 && i < len(p.options); i += step {
		if !p.options[i].Disabled {
			return i
		}
	}
	return -1
}

// Choose returns the id at index i. Disabled rows are refused.
func (p *Picker) Choose(i int) (creature.ID, error) {
	if i < 0 || i >= len(p.options) {
		return 0, fmt.Errorf("%w: option %d", trade.ErrSlotRange, i)
	}
	if p.options[i].Disabled {
		return 0, ErrAlreadySelected
	}
	return p.options[i].Item.ID, nil
}

// ChooseCurrent chooses the row under the cursor.
func (p *Picker) ChooseCurrent() (creature.ID, error) {
	if p.cursor < 0 {
		return 0, ErrNothingToChoose
	}
	return p.Choose(p.cursor)
}
