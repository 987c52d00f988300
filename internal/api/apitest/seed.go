package apitest

import (
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

// DemoPassword is the password of every seeded trainer.
const DemoPassword = "pikachu"

// Seed fills the server with three trainers, a handful of creatures each and
// one open proposal from ash to misty.
func (s *Server) Seed() {
	ash := s.AddTrainer(trainer.Trainer{FirstName: "Ash", LastName: "Ketchum", Login: "ash", BirthDate: "1987-05-22"}, DemoPassword)
	misty := s.AddTrainer(trainer.Trainer{FirstName: "Misty", LastName: "Waterflower", Login: "misty", BirthDate: "1986-04-10"}, DemoPassword)
	brock := s.AddTrainer(trainer.Trainer{FirstName: "Brock", LastName: "Harrison", Login: "brock", BirthDate: "1984-08-01"}, DemoPassword)

	roster := []struct {
		owner   trainer.ID
		species string
		name    string
		level   int
		gender  creature.Gender
		shiny   bool
	}{
		{ash.ID, "Pikachu", "Sparky", 42, creature.GenderMale, false},
		{ash.ID, "Bulbasaur", "", 18, creature.GenderMale, false},
		{ash.ID, "Charmander", "Blaze", 21, creature.GenderMale, true},
		{ash.ID, "Squirtle", "", 17, creature.GenderFemale, false},
		{misty.ID, "Staryu", "", 25, creature.GenderUnspecified, false},
		{misty.ID, "Starmie", "Star", 33, creature.GenderUnspecified, false},
		{misty.ID, "Psyduck", "", 19, creature.GenderMale, false},
		{misty.ID, "Togepi", "", 5, creature.GenderFemale, true},
		{brock.ID, "Onix", "", 30, creature.GenderMale, false},
		{brock.ID, "Geodude", "", 22, creature.GenderMale, false},
		{brock.ID, "Vulpix", "Flare", 16, creature.GenderFemale, false},
	}

	var ashFirst, mistyFirst creature.ID
	for _, r := range roster {
		c := s.AddCreature(creature.Creature{
			Species:   r.species,
			Name:      r.name,
			Level:     r.level,
			Gender:    r.gender,
			Shiny:     r.shiny,
			TrainerID: r.owner,
			Size:      1,
			Weight:    10,
		})
		if r.owner == ash.ID && ashFirst == 0 {
			ashFirst = c.ID
		}
		if r.owner == misty.ID && mistyFirst == 0 {
			mistyFirst = c.ID
		}
	}

	s.AddTrade(trade.Trade{
		Status:   trade.StatusProposition,
		Sender:   trade.Party{ID: ash.ID, Creatures: []creature.ID{ashFirst}},
		Receiver: trade.Party{ID: misty.ID, Creatures: []creature.ID{mistyFirst}},
	})
}
