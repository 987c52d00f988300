package trade

import (
	"strconv"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trainer"
)

// ID uniquely identifies a trade.
type ID int64

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// Side selects one half of a trade. The offered side belongs to the sender,
// the wanted side to the receiver.
type Side uint8

const (
	SideOffered Side = iota
	SideWanted
)

func (s Side) String() string {
	switch s {
	case SideOffered:
		return "OFFERED"
	case SideWanted:
		return "WANTED"
	default:
		return "UNKNOWN"
	}
}

// Party is one trainer and the creature ids attached to their side.
type Party struct {
	ID        trainer.ID    `json:"id"`
	Creatures []creature.ID `json:"pokemons"`
}

// Trade is the persisted proposal returned by GET /trades/{id}.
type Trade struct {
	ID       ID     `json:"id"`
	Status   Status `json:"statusCode"`
	Sender   Party  `json:"sender"`
	Receiver Party  `json:"receiver"`
}

// Party returns the party owning the given side.
func (t Trade) Party(side Side) Party {
	if side == SideWanted {
		return t.Receiver
	}
	return t.Sender
}

// Involves reports whether the trainer is the sender or the receiver.
func (t Trade) Involves(id trainer.ID) bool {
	return t.Sender.ID == id || t.Receiver.ID == id
}

// PartyRef is the id-only party of a list item.
type PartyRef struct {
	ID trainer.ID `json:"id"`
}

// ListItem is a row of GET /trainers/{id}/trades.
type ListItem struct {
	ID       ID       `json:"id"`
	Status   Status   `json:"statusCode"`
	Sender   PartyRef `json:"sender"`
	Receiver PartyRef `json:"receiver"`
}

// CreateRequest is the body of POST /trades. The sender is implied by the
// bearer credential.
type CreateRequest struct {
	ReceiverID trainer.ID    `json:"receiverId"`
	OfferedIDs []creature.ID `json:"pokemonsOfferedIds"`
	WantedIDs  []creature.ID `json:"pokemonsWantedIds"`
}

// UpdateRequest is the body of PATCH /trades/{id}.
type UpdateRequest struct {
	Status Status `json:"statusCode"`
}

// Created is the response of both POST /trades and PATCH /trades/{id}.
type Created struct {
	ID ID `json:"id"`
}

// Order is the sort direction of the trade directory.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Toggle flips the sort direction.
func (o Order) Toggle() Order {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// DefaultPageSize matches the directory page size of the web client.
const DefaultPageSize = 20

// ListParams filters GET /trainers/{id}/trades. An empty Status means any.
type ListParams struct {
	Page     int
	PageSize int
	OrderBy  Order
	Status   Status
}
