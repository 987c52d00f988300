package view

import (
	"errors"
	"testing"

	"github.com/zappabad/poketrade/internal/creature"
)

func TestPickerCursorSkipsDisabled(t *testing.T) {
	pool := []creature.ListItem{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	p := NewPicker(PickerRequest{Exclude: []creature.ID{1, 3}}, pool)

	if p.Cursor() != 1 {
		t.Fatalf("expected cursor on first enabled row, got %d", p.Cursor())
	}
	p.Move(1)
	if p.Cursor() != 3 {
		t.Errorf("expected cursor to skip row 2, got %d", p.Cursor())
	}
	p.Move(1)
	if p.Cursor() != 3 {
		t.Errorf("expected cursor to stay at the bottom, got %d", p.Cursor())
	}
	p.Move(-1)
	if p.Cursor() != 1 {
		t.Errorf("expected cursor back on row 1, got %d", p.Cursor())
	}
	if p.Selectable() != 2 {
		t.Errorf("expected 2 selectable, got %d", p.Selectable())
	}

	id, err := p.ChooseCurrent()
	if err != nil || id != 2 {
		t.Errorf("ChooseCurrent = %d, %v", id, err)
	}
}

func TestPickerAllDisabled(t *testing.T) {
	p := NewPicker(PickerRequest{Exclude: []creature.ID{1}}, []creature.ListItem{{ID: 1}})

	if _, err := p.ChooseCurrent(); !errors.Is(err, ErrNothingToChoose) {
		t.Errorf("expected ErrNothingToChoose, got %v", err)
	}
	if _, err := NewPicker(PickerRequest{}, nil).ChooseCurrent(); !errors.Is(err, ErrNothingToChoose) {
		t.Errorf("expected ErrNothingToChoose for an empty pool, got %v", err)
	}
	if _, err := p.Choose(0); !errors.Is(err, ErrAlreadySelected) {
		t.Errorf("expected ErrAlreadySelected, got %v", err)
	}
}
