// Package apitest is an in-memory implementation of the remote trading API.
// It re-validates everything the client checks so tests can exercise the
// server's authority: only the receiver may respond, and only to an open trade.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

type account struct {
	trainer.Trainer
	hash []byte
}

type failure struct {
	status int
	body   any
}

// Server holds the fake API state. All exported methods are safe for
// concurrent use with in-flight requests.
type Server struct {
	mu sync.Mutex

	secret []byte

	trainers  map[trainer.ID]*account
	creatures map[creature.ID]creature.Creature
	trades    map[trade.ID]*trade.Trade

	nextTrainer  trainer.ID
	nextCreature creature.ID
	nextTrade    trade.ID

	failures map[string]failure
	hits     map[string]int

	router *gin.Engine
}

func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:    []byte("apitest-secret"),
		trainers:  make(map[trainer.ID]*account),
		creatures: make(map[creature.ID]creature.Creature),
		trades:    make(map[trade.ID]*trade.Trade),
		failures:  make(map[string]failure),
		hits:      make(map[string]int),
	}
	s.router = s.setupRouter()
	return s
}

// Handler exposes the router, e.g. for http.ListenAndServe.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves the fake API on a loopback listener. Close the returned server when done.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.router)
}

// AddTrainer registers a trainer with the given password. A zero ID is assigned.
func (s *Server) AddTrainer(t trainer.Trainer, password string) trainer.Trainer {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		s.nextTrainer++
		t.ID = s.nextTrainer
	} else if t.ID > s.nextTrainer {
		s.nextTrainer = t.ID
	}
	s.trainers[t.ID] = &account{Trainer: t, hash: hash}
	return t
}

// AddCreature stores a creature. A zero ID is assigned.
func (s *Server) AddCreature(c creature.Creature) creature.Creature {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		s.nextCreature++
		c.ID = s.nextCreature
	} else if c.ID > s.nextCreature {
		s.nextCreature = c.ID
	}
	if c.Gender == "" {
		c.Gender = creature.GenderUnspecified
	}
	c.Level = max(creature.MinLevel, min(c.Level, creature.MaxLevel))
	s.creatures[c.ID] = c
	return c
}

// AddTrade stores a trade as-is, bypassing validation. A zero ID is assigned.
func (s *Server) AddTrade(t trade.Trade) trade.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		s.nextTrade++
		t.ID = s.nextTrade
	} else if t.ID > s.nextTrade {
		s.nextTrade = t.ID
	}
	if t.Status == "" {
		t.Status = trade.StatusProposition
	}
	stored := t
	s.trades[t.ID] = &stored
	return t
}

// Trade returns the stored copy of a trade.
func (s *Server) Trade(id trade.ID) (trade.Trade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trades[id]
	if !ok {
		return trade.Trade{}, false
	}
	return *t, true
}

// Trades returns every stored trade ordered by id.
func (s *Server) Trades() []trade.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]trade.Trade, 0, len(s.trades))
	for _, t := range s.trades {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Creature returns the stored creature.
func (s *Server) Creature(id creature.ID) (creature.Creature, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creatures[id]
	return c, ok
}

// Fail makes every request matching "METHOD /path" answer with status and body
// until Recover is called. body may be a string, a gin.H or nil.
func (s *Server) Fail(route string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Hits counts requests received for "METHOD /path", failed ones included.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.recordAndInject())

	router.POST("/login", s.login)
	router.POST("/subscribe", s.subscribe)

	authed := router.Group("/")
	authed.Use(s.requireAuth())
	{
		authed.GET("/trainers", s.searchTrainers)
		authed.GET("/trainers/:id", s.getTrainer)
		authed.GET("/trainers/:id/pokemons", s.trainerCreatures)
		authed.GET("/trainers/:id/trades", s.trainerTrades)
		authed.GET("/pokemons/:id", s.getCreature)
		authed.POST("/trades", s.createTrade)
		authed.GET("/trades/:id", s.getTrade)
		authed.PATCH("/trades/:id", s.updateTrade)
	}

	return router
}

func (s *Server) recordAndInject() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.Request.URL.Path

		s.mu.Lock()
		s.hits[route]++
		f, failing := s.failures[route]
		s.mu.Unlock()

		if !failing {
			c.Next()
			return
		}

		switch body := f.body.(type) {
		case nil:
			c.Status(f.status)
		case string:
			c.String(f.status, body)
		default:
			c.JSON(f.status, body)
		}
		c.Abort()
	}
}
