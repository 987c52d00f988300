package trainer

import (
	"fmt"
	"strconv"
	"strings"
)

// ID uniquely identifies a trainer.
type ID int64

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// Trainer is a registered user as returned by GET /trainers/{id}.
type Trainer struct {
	ID        ID     `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Login     string `json:"login"`
	BirthDate string `json:"birthDate"`
}

// DisplayName returns "First Last", falling back to the login and then the id.
func (t Trainer) DisplayName() string {
	name := strings.TrimSpace(t.FirstName + " " + t.LastName)
	if name != "" {
		return name
	}
	if t.Login != "" {
		return t.Login
	}
	return fmt.Sprintf("Trainer #%d", t.ID)
}

// ListItem is the search projection of a trainer.
type ListItem struct {
	ID        ID     `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Login     string `json:"login"`
}

// DisplayName mirrors Trainer.DisplayName for search results.
func (t ListItem) DisplayName() string {
	return Trainer{ID: t.ID, FirstName: t.FirstName, LastName: t.LastName, Login: t.Login}.DisplayName()
}

// SearchParams filters GET /trainers. Zero values are omitted from the query.
type SearchParams struct {
	Page      int
	PageSize  int
	FirstName string
	LastName  string
	Login     string
}

// FallbackName is shown when a trainer could not be resolved.
func FallbackName(id ID) string {
	return fmt.Sprintf("Trainer ID: %d", id)
}
