package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/trainer"
)

// API is the subset of the remote client the creature service needs.
type API interface {
	GetCreature(ctx context.Context, id creature.ID) (creature.Creature, error)
	ListTrainerCreatures(ctx context.Context, id trainer.ID) ([]creature.ListItem, error)
}

// Service resolves creature ids to full records.
type Service struct {
	cfg Config
	api API
}

func NewService(api API, cfg Config) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	return &Service{cfg: cfg, api: api}
}

func (s *Service) Get(ctx context.Context, id creature.ID) (creature.Creature, error) {
	c, err := s.api.GetCreature(ctx, id)
	if err != nil {
		return creature.Creature{}, fmt.Errorf("getting creature %d: %w", id, err)
	}
	return c, nil
}

// Pool lists the creatures a trainer owns, i.e. the candidates for one side of a trade.
func (s *Service) Pool(ctx context.Context, owner trainer.ID) ([]creature.ListItem, error) {
	items, err := s.api.ListTrainerCreatures(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing creatures of trainer %d: %w", owner, err)
	}
	return items, nil
}

// ResolveAll fetches every id concurrently and waits for all of them. A failed
// lookup is recorded on its own entry and never cancels the others. The result
// has the same length and order as ids.
func (s *Service) ResolveAll(ctx context.Context, ids []creature.ID) []creature.Resolved {
	out := make([]creature.Resolved, len(ids))
	if len(ids) == 0 {
		return out
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i, id := range ids {
		g.Go(func() error {
			c, err := s.api.GetCreature(ctx, id)
			if err != nil {
				logger.Service("creature").Warn("Creature lookup failed", "id", id, "err", err)
				out[i] = creature.Resolved{ID: id, Err: err}
				return nil
			}
			out[i] = creature.Resolved{ID: id, Creature: &c}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
