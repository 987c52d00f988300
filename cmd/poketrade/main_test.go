package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/poketrade/internal/api/apitest"
	"github.com/zappabad/poketrade/internal/config"
	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/trainer"
)

func newTestApp(t *testing.T) (*app, *apitest.Server, *bytes.Buffer) {
	t.Helper()
	logger.Discard()

	fake := apitest.New()
	fake.AddTrainer(trainer.Trainer{FirstName: "Ash", Login: "ash"}, "pw")
	ts := fake.Start()
	t.Cleanup(ts.Close)

	cfg := &config.Config{}
	cfg.API.BaseURL = ts.URL
	cfg.Session.DBPath = ":memory:"

	a, err := newApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.store.Close() })

	out := &bytes.Buffer{}
	a.out = out
	return a, fake, out
}

func TestSubscribeSignsIn(t *testing.T) {
	a, fake, out := newTestApp(t)
	t.Setenv("POKETRADE_PASSWORD", "togepi")
	ctx := context.Background()

	err := a.subscribe(ctx, []string{"-u", "brock", "-f", "Brock", "-n", "Harrison", "-b", "1990-04-01"})
	require.NoError(t, err)

	assert.True(t, a.session.Authenticated())
	assert.Contains(t, out.String(), "Signed in as brock")
	assert.Equal(t, 1, fake.Hits("POST /subscribe"))

	cached, err := a.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.session.TrainerID, cached.TrainerID)

	auth, err := a.client.Login(ctx, "brock", "togepi")
	require.NoError(t, err)
	assert.Equal(t, a.session.TrainerID, auth.TrainerID)
}

func TestSubscribeValidatesFlags(t *testing.T) {
	a, fake, _ := newTestApp(t)
	t.Setenv("POKETRADE_PASSWORD", "togepi")
	ctx := context.Background()

	assert.Error(t, a.subscribe(ctx, []string{"-u", "brock"}))
	assert.Error(t, a.subscribe(ctx, []string{"-u", "brock", "-f", "Brock", "-n", "Harrison", "-b", "01/04/1990"}))
	assert.Equal(t, 0, fake.Hits("POST /subscribe"))
	assert.False(t, a.session.Authenticated())
}

func TestSubscribeTakenLogin(t *testing.T) {
	a, _, _ := newTestApp(t)
	t.Setenv("POKETRADE_PASSWORD", "pikachu")

	err := a.subscribe(context.Background(), []string{"-u", "ash", "-f", "Ash", "-n", "Ketchum", "-b", "1987-05-22"})
	require.Error(t, err)
	assert.False(t, a.session.Authenticated())
}
