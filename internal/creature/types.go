package creature

import (
	"strconv"

	"github.com/zappabad/poketrade/internal/trainer"
)

// ID uniquely identifies a creature.
type ID int64

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// Gender is the wire value of genderTypeCode.
type Gender string

const (
	GenderMale        Gender = "MALE"
	GenderFemale      Gender = "FEMALE"
	GenderUnspecified Gender = "NOT_DEFINED"
)

// Symbol returns a one-rune marker for compact rendering.
func (g Gender) Symbol() string {
	switch g {
	case GenderMale:
		return "♂"
	case GenderFemale:
		return "♀"
	default:
		return "-"
	}
}

const (
	MinLevel = 1
	MaxLevel = 100
)

// Creature is the full record returned by GET /pokemons/{id}.
type Creature struct {
	ID        ID         `json:"id"`
	Species   string     `json:"species"`
	Name      string     `json:"name"`
	Level     int        `json:"level"`
	Gender    Gender     `json:"genderTypeCode"`
	Size      float64    `json:"size,omitempty"`
	Weight    float64    `json:"weight,omitempty"`
	Shiny     bool       `json:"isShiny"`
	TrainerID trainer.ID `json:"trainerId,omitempty"`
	BoxID     int64      `json:"boxId,omitempty"`
}

// DisplayName returns the nickname, or the species when no nickname is set.
func (c Creature) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Species
}

// ListItem is the pool projection returned by GET /trainers/{id}/pokemons.
type ListItem struct {
	ID        ID         `json:"id"`
	Species   string     `json:"species"`
	Name      string     `json:"name"`
	Level     int        `json:"level"`
	Gender    Gender     `json:"genderTypeCode"`
	Shiny     bool       `json:"isShiny"`
	TrainerID trainer.ID `json:"trainerId"`
}

func (c ListItem) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Species
}

// Resolved is the settled outcome of resolving one creature id.
// Exactly one of Creature or Err is meaningful.
type Resolved struct {
	ID       ID
	Creature *Creature
	Err      error
}

// OK reports whether the creature was resolved.
func (r Resolved) OK() bool { return r.Err == nil && r.Creature != nil }
