package trade

import (
	"errors"
	"fmt"

	"github.com/zappabad/poketrade/internal/creature"
)

// SlotCap is the number of creatures each side of a trade can hold.
const SlotCap = 6

var (
	ErrSlotRange         = errors.New("slot index out of range")
	ErrDuplicateCreature = errors.New("creature already occupies a slot on this side")
)

// Slot holds at most one creature. The zero value is empty.
type Slot struct {
	creature creature.Creature
	filled   bool
}

// Get returns the creature and whether the slot is filled.
func (s Slot) Get() (creature.Creature, bool) { return s.creature, s.filled }

func (s Slot) Filled() bool { return s.filled }

// Slots is one side of a composition. Its length is fixed, so a seventh
// selection has nowhere to go.
type Slots [SlotCap]Slot

// Set stores c into slot i. Setting the creature already held by slot i is
// allowed; holding it in any other slot of the same side is not.
func (s *Slots) Set(i int, c creature.Creature) error {
	if i < 0 || i >= SlotCap {
		return fmt.Errorf("%w: %d", ErrSlotRange, i)
	}
	for j, slot := range s {
		if j != i && slot.filled && slot.creature.ID == c.ID {
			return fmt.Errorf("%w: creature %d in slot %d", ErrDuplicateCreature, c.ID, j)
		}
	}
	s[i] = Slot{creature: c, filled: true}
	return nil
}

// Clear empties slot i and reports whether anything changed. Clearing an
// empty or out-of-range slot is a no-op.
func (s *Slots) Clear(i int) bool {
	if i < 0 || i >= SlotCap || !s[i].filled {
		return false
	}
	s[i] = Slot{}
	return true
}

// At returns the creature in slot i.
func (s *Slots) At(i int) (creature.Creature, bool) {
	if i < 0 || i >= SlotCap {
		return creature.Creature{}, false
	}
	return s[i].Get()
}

// IDs returns the ids of filled slots in slot order. Never nil, so an empty
// side still encodes as [].
func (s *Slots) IDs() []creature.ID {
	ids := make([]creature.ID, 0, SlotCap)
	for _, slot := range s {
		if slot.filled {
			ids = append(ids, slot.creature.ID)
		}
	}
	return ids
}

func (s *Slots) Contains(id creature.ID) bool {
	for _, slot := range s {
		if slot.filled && slot.creature.ID == id {
			return true
		}
	}
	return false
}

// Len counts filled slots.
func (s *Slots) Len() int {
	n := 0
	for _, slot := range s {
		if slot.filled {
			n++
		}
	}
	return n
}

func (s *Slots) Empty() bool { return s.Len() == 0 }

// FirstFree returns the lowest empty slot index, or -1 when the side is full.
func (s *Slots) FirstFree() int {
	for i, slot := range s {
		if !slot.filled {
			return i
		}
	}
	return -1
}
