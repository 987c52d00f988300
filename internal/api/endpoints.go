package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

// Credentials is the body of POST /login.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SubscribeRequest is the body of POST /subscribe.
type SubscribeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Login     string `json:"login"`
	BirthDate string `json:"birthDate"`
	Password  string `json:"password"`
}

// Auth is returned by both login and subscribe.
type Auth struct {
	AccessToken string     `json:"accessToken"`
	TrainerID   trainer.ID `json:"trainerId"`
}

func (c *Client) Login(ctx context.Context, login, password string) (Auth, error) {
	var out Auth
	err := c.do(ctx, http.MethodPost, "/login", nil, Credentials{Login: login, Password: password}, &out)
	return out, err
}

func (c *Client) Subscribe(ctx context.Context, req SubscribeRequest) (Auth, error) {
	var out Auth
	err := c.do(ctx, http.MethodPost, "/subscribe", nil, req, &out)
	return out, err
}

// ListTrades fetches one page of trades involving the trainer.
func (c *Client) ListTrades(ctx context.Context, id trainer.ID, p trade.ListParams) ([]trade.ListItem, error) {
	if p.PageSize <= 0 {
		p.PageSize = trade.DefaultPageSize
	}
	if p.OrderBy == "" {
		p.OrderBy = trade.OrderDesc
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	q.Set("orderBy", string(p.OrderBy))
	if p.Status != "" {
		q.Set("statusCode", string(p.Status))
	}

	var out []trade.ListItem
	if err := c.get(ctx, "/trainers/"+id.String()+"/trades", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTrade(ctx context.Context, id trade.ID) (trade.Trade, error) {
	var out trade.Trade
	err := c.get(ctx, "/trades/"+id.String(), nil, &out)
	return out, err
}

func (c *Client) CreateTrade(ctx context.Context, req trade.CreateRequest) (trade.Created, error) {
	// the API expects [] rather than null for an empty side
	if req.OfferedIDs == nil {
		req.OfferedIDs = []creature.ID{}
	}
	if req.WantedIDs == nil {
		req.WantedIDs = []creature.ID{}
	}

	var out trade.Created
	err := c.do(ctx, http.MethodPost, "/trades", nil, req, &out)
	return out, err
}

func (c *Client) UpdateTrade(ctx context.Context, id trade.ID, req trade.UpdateRequest) (trade.Created, error) {
	var out trade.Created
	err := c.do(ctx, http.MethodPatch, "/trades/"+id.String(), nil, req, &out)
	return out, err
}

func (c *Client) GetCreature(ctx context.Context, id creature.ID) (creature.Creature, error) {
	var out creature.Creature
	err := c.get(ctx, "/pokemons/"+id.String(), nil, &out)
	return out, err
}

func (c *Client) ListTrainerCreatures(ctx context.Context, id trainer.ID) ([]creature.ListItem, error) {
	var out []creature.ListItem
	if err := c.get(ctx, "/trainers/"+id.String()+"/pokemons", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTrainer(ctx context.Context, id trainer.ID) (trainer.Trainer, error) {
	var out trainer.Trainer
	err := c.get(ctx, "/trainers/"+id.String(), nil, &out)
	return out, err
}

func (c *Client) SearchTrainers(ctx context.Context, p trainer.SearchParams) ([]trainer.ListItem, error) {
	q := url.Values{}
	if p.FirstName != "" {
		q.Set("firstName", p.FirstName)
	}
	if p.LastName != "" {
		q.Set("lastName", p.LastName)
	}
	if p.Login != "" {
		q.Set("login", p.Login)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}

	var out []trainer.ListItem
	if err := c.get(ctx, "/trainers", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
