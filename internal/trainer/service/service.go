package service

import (
	"context"
	"fmt"

	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/trainer"
)

// Config holds configuration for the trainer service.
type Config struct {
	// SearchPageSize is used when a search does not ask for a page size.
	SearchPageSize int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{SearchPageSize: 20}
}

// API is the subset of the remote client the trainer service needs.
type API interface {
	GetTrainer(ctx context.Context, id trainer.ID) (trainer.Trainer, error)
	SearchTrainers(ctx context.Context, p trainer.SearchParams) ([]trainer.ListItem, error)
}

type Service struct {
	cfg Config
	api API
}

func NewService(api API, cfg Config) *Service {
	if cfg.SearchPageSize <= 0 {
		cfg.SearchPageSize = DefaultConfig().SearchPageSize
	}
	return &Service{cfg: cfg, api: api}
}

func (s *Service) Get(ctx context.Context, id trainer.ID) (trainer.Trainer, error) {
	t, err := s.api.GetTrainer(ctx, id)
	if err != nil {
		return trainer.Trainer{}, fmt.Errorf("getting trainer %d: %w", id, err)
	}
	return t, nil
}

func (s *Service) Search(ctx context.Context, p trainer.SearchParams) ([]trainer.ListItem, error) {
	if p.PageSize <= 0 {
		p.PageSize = s.cfg.SearchPageSize
	}
	items, err := s.api.SearchTrainers(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("searching trainers: %w", err)
	}
	return items, nil
}

// Name resolves a display name, degrading to "Trainer ID: n" on any failure.
func (s *Service) Name(ctx context.Context, id trainer.ID) string {
	t, err := s.api.GetTrainer(ctx, id)
	if err != nil {
		logger.Service("trainer").Debug("Trainer name unavailable", "id", id, "err", err)
		return trainer.FallbackName(id)
	}
	return t.DisplayName()
}
