package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

var ErrNoTrainer = errors.New("trainer id not known")

// API is the subset of the remote client the trade service needs.
type API interface {
	ListTrades(ctx context.Context, id trainer.ID, p trade.ListParams) ([]trade.ListItem, error)
	GetTrade(ctx context.Context, id trade.ID) (trade.Trade, error)
	CreateTrade(ctx context.Context, req trade.CreateRequest) (trade.Created, error)
	UpdateTrade(ctx context.Context, id trade.ID, req trade.UpdateRequest) (trade.Created, error)
}

// Resolver settles creature ids into records.
type Resolver interface {
	ResolveAll(ctx context.Context, ids []creature.ID) []creature.Resolved
}

// Trainers looks up trainer records.
type Trainers interface {
	Get(ctx context.Context, id trainer.ID) (trainer.Trainer, error)
}

// Hydrated is a trade with both sides' creatures and both parties resolved.
// Creature failures are kept per entry; a trainer that could not be fetched is nil.
type Hydrated struct {
	Trade             trade.Trade
	SenderCreatures   []creature.Resolved
	ReceiverCreatures []creature.Resolved
	Sender            *trainer.Trainer
	Receiver          *trainer.Trainer
}

func (h Hydrated) SenderName() string   { return nameOf(h.Sender, h.Trade.Sender.ID) }
func (h Hydrated) ReceiverName() string { return nameOf(h.Receiver, h.Trade.Receiver.ID) }

func nameOf(t *trainer.Trainer, id trainer.ID) string {
	if t == nil {
		return trainer.FallbackName(id)
	}
	return t.DisplayName()
}

type Service struct {
	cfg       Config
	api       API
	creatures Resolver
	trainers  Trainers
}

func NewService(api API, creatures Resolver, trainers Trainers, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return &Service{cfg: cfg, api: api, creatures: creatures, trainers: trainers}
}

// List fetches one directory page for the trainer.
func (s *Service) List(ctx context.Context, owner trainer.ID, p trade.ListParams) ([]trade.ListItem, error) {
	if owner <= 0 {
		return nil, ErrNoTrainer
	}
	if p.PageSize <= 0 {
		p.PageSize = s.cfg.PageSize
	}
	if p.OrderBy == "" {
		p.OrderBy = trade.OrderDesc
	}

	items, err := s.api.ListTrades(ctx, owner, p)
	if err != nil {
		return nil, fmt.Errorf("listing trades of trainer %d: %w", owner, err)
	}
	return items, nil
}

// FetchTrade loads the bare record without hydration.
func (s *Service) FetchTrade(ctx context.Context, id trade.ID) (trade.Trade, error) {
	t, err := s.api.GetTrade(ctx, id)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("getting trade %d: %w", id, err)
	}
	if err := t.Validate(); err != nil {
		// the server is authoritative; surface oddities in the log only
		logger.Service("trade").Warn("Trade record looks inconsistent", "id", id, "err", err)
	}
	return t, nil
}

// ResolveSide resolves the creatures on one side of a trade.
func (s *Service) ResolveSide(ctx context.Context, t trade.Trade, side trade.Side) []creature.Resolved {
	return s.creatures.ResolveAll(ctx, t.Party(side).Creatures)
}

// ResolveTrainer fetches one party's record. Callers treat a failure as a
// reason to show the fallback name, not as a page error.
func (s *Service) ResolveTrainer(ctx context.Context, id trainer.ID) (*trainer.Trainer, error) {
	t, err := s.trainers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Load fetches the trade, then resolves both sides and both parties
// concurrently. Only the initial fetch can fail the call.
func (s *Service) Load(ctx context.Context, id trade.ID) (Hydrated, error) {
	t, err := s.FetchTrade(ctx, id)
	if err != nil {
		return Hydrated{}, err
	}

	h := Hydrated{Trade: t}

	var g errgroup.Group
	g.Go(func() error {
		h.SenderCreatures = s.ResolveSide(ctx, t, trade.SideOffered)
		return nil
	})
	g.Go(func() error {
		h.ReceiverCreatures = s.ResolveSide(ctx, t, trade.SideWanted)
		return nil
	})
	g.Go(func() error {
		h.Sender, _ = s.ResolveTrainer(ctx, t.Sender.ID)
		return nil
	})
	g.Go(func() error {
		h.Receiver, _ = s.ResolveTrainer(ctx, t.Receiver.ID)
		return nil
	})
	_ = g.Wait()

	return h, nil
}

// Create validates the request locally and submits it. Invalid requests never
// reach the network.
func (s *Service) Create(ctx context.Context, req trade.CreateRequest) (trade.Created, error) {
	if err := req.Validate(); err != nil {
		return trade.Created{}, err
	}

	created, err := s.api.CreateTrade(ctx, req)
	if err != nil {
		return trade.Created{}, fmt.Errorf("creating trade: %w", err)
	}

	logger.Service("trade").Info("Trade proposed",
		"id", created.ID,
		"receiver", req.ReceiverID,
		"offered", len(req.OfferedIDs),
		"wanted", len(req.WantedIDs))
	return created, nil
}

// Respond sends the receiver's decision. Only ACCEPTED and DECLINED are accepted.
func (s *Service) Respond(ctx context.Context, id trade.ID, decision trade.Status) (trade.Created, error) {
	req, err := trade.NewUpdate(decision)
	if err != nil {
		return trade.Created{}, err
	}

	updated, err := s.api.UpdateTrade(ctx, id, req)
	if err != nil {
		return trade.Created{}, fmt.Errorf("updating trade %d: %w", id, err)
	}

	logger.Service("trade").Info("Trade answered", "id", id, "status", decision)
	return updated, nil
}
