package apitest

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}

// page extracts 0-based pagination with a default size.
func page(c *gin.Context, defaultSize int) (int, int) {
	p, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || p < 0 {
		p = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultSize)))
	if err != nil || size <= 0 {
		size = defaultSize
	}
	return p, size
}

func paginate[T any](items []T, p, size int) []T {
	start := p * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (s *Server) searchTrainers(c *gin.Context) {
	first, last, login := c.Query("firstName"), c.Query("lastName"), c.Query("login")
	p, size := page(c, 20)

	s.mu.Lock()
	matches := make([]trainer.ListItem, 0)
	for _, a := range s.trainers {
		if containsFold(a.FirstName, first) && containsFold(a.LastName, last) && containsFold(a.Login, login) {
			matches = append(matches, trainer.ListItem{
				ID:        a.ID,
				FirstName: a.FirstName,
				LastName:  a.LastName,
				Login:     a.Login,
			})
		}
	}
	s.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	c.JSON(http.StatusOK, paginate(matches, p, size))
}

func (s *Server) getTrainer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	a, found := s.trainers[trainer.ID(id)]
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Trainer not found"})
		return
	}
	c.JSON(http.StatusOK, a.Trainer)
}

func (s *Server) trainerCreatures(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	owner := trainer.ID(id)

	s.mu.Lock()
	_, found := s.trainers[owner]
	items := make([]creature.ListItem, 0)
	for _, cr := range s.creatures {
		if cr.TrainerID == owner {
			items = append(items, creature.ListItem{
				ID:        cr.ID,
				Species:   cr.Species,
				Name:      cr.Name,
				Level:     cr.Level,
				Gender:    cr.Gender,
				Shiny:     cr.Shiny,
				TrainerID: cr.TrainerID,
			})
		}
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Trainer not found"})
		return
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, items)
}

func (s *Server) getCreature(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cr, found := s.Creature(creature.ID(id))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Pokemon not found"})
		return
	}
	c.JSON(http.StatusOK, cr)
}

func (s *Server) trainerTrades(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	owner := trainer.ID(id)
	if owner != caller(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only list your own trades"})
		return
	}

	var status trade.Status
	if raw := c.Query("statusCode"); raw != "" {
		parsed, err := trade.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown status code"})
			return
		}
		status = parsed
	}
	desc := !strings.EqualFold(c.DefaultQuery("orderBy", string(trade.OrderDesc)), string(trade.OrderAsc))
	p, size := page(c, trade.DefaultPageSize)

	items := make([]trade.ListItem, 0)
	for _, t := range s.Trades() {
		if !t.Involves(owner) || (status != "" && t.Status != status) {
			continue
		}
		items = append(items, trade.ListItem{
			ID:       t.ID,
			Status:   t.Status,
			Sender:   trade.PartyRef{ID: t.Sender.ID},
			Receiver: trade.PartyRef{ID: t.Receiver.ID},
		})
	}
	if desc {
		sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	}

	c.JSON(http.StatusOK, paginate(items, p, size))
}

func (s *Server) getTrade(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, found := s.Trade(trade.ID(id))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Trade not found"})
		return
	}
	if !t.Involves(caller(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not part of this trade"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createTrade(c *gin.Context) {
	var req trade.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sender := caller(c)
	if req.ReceiverID == sender {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot trade with yourself"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trainers[req.ReceiverID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Receiver not found"})
		return
	}
	if msg := s.checkOwnership(req.OfferedIDs, sender); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}
	if msg := s.checkOwnership(req.WantedIDs, req.ReceiverID); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	s.nextTrade++
	t := &trade.Trade{
		ID:       s.nextTrade,
		Status:   trade.StatusProposition,
		Sender:   trade.Party{ID: sender, Creatures: append([]creature.ID{}, req.OfferedIDs...)},
		Receiver: trade.Party{ID: req.ReceiverID, Creatures: append([]creature.ID{}, req.WantedIDs...)},
	}
	s.trades[t.ID] = t

	c.JSON(http.StatusCreated, trade.Created{ID: t.ID})
}

// checkOwnership must be called with s.mu held.
func (s *Server) checkOwnership(ids []creature.ID, owner trainer.ID) string {
	for _, id := range ids {
		cr, ok := s.creatures[id]
		if !ok {
			return "Pokemon " + id.String() + " not found"
		}
		if cr.TrainerID != owner {
			return "Pokemon " + id.String() + " does not belong to trainer " + owner.String()
		}
	}
	return ""
}

func (s *Server) updateTrade(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req trade.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.trades[trade.ID(id)]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Trade not found"})
		return
	}
	if t.Receiver.ID != caller(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only the receiver can respond to this trade"})
		return
	}

	if err := trade.Transition(t.Status, req.Status); err != nil {
		switch {
		case errors.Is(err, trade.ErrTerminalStatus):
			c.JSON(http.StatusConflict, gin.H{"message": "Trade is no longer open"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status code"})
		}
		return
	}

	t.Status = req.Status
	if t.Status == trade.StatusAccepted {
		s.swapOwners(t)
	}

	c.JSON(http.StatusOK, trade.Created{ID: t.ID})
}

// swapOwners must be called with s.mu held.
func (s *Server) swapOwners(t *trade.Trade) {
	for _, id := range t.Sender.Creatures {
		if cr, ok := s.creatures[id]; ok {
			cr.TrainerID = t.Receiver.ID
			s.creatures[id] = cr
		}
	}
	for _, id := range t.Receiver.Creatures {
		if cr, ok := s.creatures[id]; ok {
			cr.TrainerID = t.Sender.ID
			s.creatures[id] = cr
		}
	}
}
