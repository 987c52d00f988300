package tui

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/api/apitest"
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/session"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/internal/trainer"
	"github.com/zappabad/poketrade/tui/panels"
)

type memStore struct {
	saved   []session.Session
	cleared int
}

func (s *memStore) Save(_ context.Context, sess session.Session) error {
	s.saved = append(s.saved, sess)
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.cleared++
	return nil
}

type fixture struct {
	fake           *apitest.Server
	client         *api.Client
	store          *memStore
	ash, misty     trainer.Trainer
	pikachu, eevee creature.Creature
	staryu         creature.Creature
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger.Discard()

	fake := apitest.New()
	f := fixture{fake: fake, store: &memStore{}}
	f.ash = fake.AddTrainer(trainer.Trainer{FirstName: "Ash", LastName: "Ketchum", Login: "ash"}, "pw")
	f.misty = fake.AddTrainer(trainer.Trainer{FirstName: "Misty", Login: "misty"}, "pw")
	f.pikachu = fake.AddCreature(creature.Creature{Species: "Pikachu", TrainerID: f.ash.ID, Level: 40})
	f.eevee = fake.AddCreature(creature.Creature{Species: "Eevee", TrainerID: f.ash.ID, Level: 12})
	f.staryu = fake.AddCreature(creature.Creature{Species: "Staryu", TrainerID: f.misty.ID, Level: 20})

	ts := fake.Start()
	t.Cleanup(ts.Close)

	client, err := api.New(api.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	f.client = client
	return f
}

func (f fixture) model(t *testing.T, as *trainer.Trainer, start *view.Route) *Model {
	t.Helper()
	var sess session.Session
	if as != nil {
		sess = session.New(f.fake.Token(as.ID), as.ID)
	}
	m := NewModel(Options{Client: f.client, Store: f.store, Session: sess, Start: start})
	drain(t, m, m.Init())
	return m
}

func (f fixture) proposal(t *testing.T) trade.Trade {
	t.Helper()
	return f.fake.AddTrade(trade.Trade{
		Status:   trade.StatusProposition,
		Sender:   trade.Party{ID: f.ash.ID, Creatures: []creature.ID{f.pikachu.ID}},
		Receiver: trade.Party{ID: f.misty.ID, Creatures: []creature.ID{f.staryu.ID}},
	})
}

// drain runs cmd and feeds every resulting message from this module back into
// the model until nothing is left. Messages from the bubbles widgets (cursor
// blinks, spinner ticks) are dropped so the loop terminates.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := run(next).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			if !ownMessage(msg) {
				continue
			}
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

func run(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		return nil
	}
}

func ownMessage(msg tea.Msg) bool {
	return strings.HasPrefix(reflect.TypeOf(msg).PkgPath(), "github.com/zappabad/poketrade/")
}

func press(t *testing.T, m *Model, k tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(k)
	drain(t, m, cmd)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestStartsOnLoginWithoutSession(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, nil, nil)

	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Zero(t, f.fake.Hits("GET /trainers/"+f.ash.ID.String()+"/trades"))
}

func TestLoginOpensDirectory(t *testing.T) {
	f := newFixture(t)
	f.proposal(t)
	m := f.model(t, nil, nil)

	_, cmd := m.Update(panels.LoginSubmitMsg{Login: "ash", Password: "pw"})
	drain(t, m, cmd)

	require.Equal(t, ScreenDirectory, m.Screen())
	assert.Equal(t, f.ash.ID, m.Session().TrainerID)
	require.Len(t, f.store.saved, 1)
	assert.Equal(t, f.ash.ID, f.store.saved[0].TrainerID)

	items := m.directoryPanel.Directory().Items()
	require.Len(t, items, 1)
	assert.Equal(t, f.misty.ID, items[0].Receiver.ID)
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, nil, nil)

	_, cmd := m.Update(panels.LoginSubmitMsg{Login: "ash", Password: "wrong"})
	drain(t, m, cmd)

	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Equal(t, "Invalid login or password", m.loginPanel.Err())
	assert.False(t, m.loginPanel.Busy())
	assert.Empty(t, f.store.saved)
	assert.Zero(t, f.store.cleared)
}

func TestProposeTradeEndToEnd(t *testing.T) {
	f := newFixture(t)
	start := view.ComposeRoute(f.misty.ID)
	m := f.model(t, &f.ash, &start)

	require.Equal(t, ScreenComposer, m.Screen())
	c := m.composerPanel.Composer()
	require.Equal(t, view.ComposerReady, c.State())
	assert.Equal(t, "Misty", c.ReceiverName())

	// offered slot 1 from ash's pool
	press(t, m, enter)
	require.NotNil(t, m.pickerPanel)
	require.NotNil(t, m.pickerPanel.Picker())
	assert.Equal(t, f.ash.ID, m.pickerPanel.Request().OwnerID)
	press(t, m, enter)
	assert.Nil(t, m.pickerPanel)

	// wanted slot 1 from misty's pool
	press(t, m, right)
	press(t, m, enter)
	require.NotNil(t, m.pickerPanel)
	assert.Equal(t, f.misty.ID, m.pickerPanel.Request().OwnerID)
	press(t, m, enter)

	offered := c.Slots(trade.SideOffered)
	wanted := c.Slots(trade.SideWanted)
	require.Equal(t, 1, offered.Len())
	require.Equal(t, []creature.ID{f.staryu.ID}, wanted.IDs())

	press(t, m, runes("s"))

	require.Equal(t, ScreenDetail, m.Screen())
	trades := f.fake.Trades()
	require.Len(t, trades, 1)
	created := trades[0]
	assert.Equal(t, created.ID, m.Route().TradeID)
	assert.Equal(t, f.ash.ID, created.Sender.ID)
	assert.Equal(t, f.misty.ID, created.Receiver.ID)
	assert.Equal(t, offered.IDs(), created.Sender.Creatures)
	assert.Equal(t, []creature.ID{f.staryu.ID}, created.Receiver.Creatures)
	assert.Equal(t, "Trade #"+created.ID.String()+" proposed", m.StatusMessage())

	d := m.detailPanel.Detail()
	assert.True(t, d.Hydrated())
	assert.False(t, d.ShowsActions())
}

func TestEmptySubmitNeverReachesServer(t *testing.T) {
	f := newFixture(t)
	start := view.ComposeRoute(f.misty.ID)
	m := f.model(t, &f.ash, &start)

	press(t, m, runes("s"))

	assert.Equal(t, ScreenComposer, m.Screen())
	assert.Equal(t, view.MsgEmptyTrade, m.composerPanel.Composer().Err())
	assert.Equal(t, view.ComposerReady, m.composerPanel.Composer().State())
	assert.Zero(t, f.fake.Hits("POST /trades"))
}

func TestComposeWithoutReceiver(t *testing.T) {
	f := newFixture(t)
	start := view.Route{Kind: view.RouteTradeCreate}
	m := f.model(t, &f.ash, &start)

	c := m.composerPanel.Composer()
	assert.Equal(t, view.ComposerUnavailable, c.State())
	assert.Equal(t, view.MsgReceiverNotInURL, c.Err())

	press(t, m, enter)
	assert.Nil(t, m.pickerPanel)
}

func TestReceiverDeclines(t *testing.T) {
	f := newFixture(t)
	tr := f.proposal(t)
	start := view.DetailRoute(tr.ID)
	m := f.model(t, &f.misty, &start)

	d := m.detailPanel.Detail()
	require.True(t, d.Hydrated())
	require.True(t, d.CanRespond())
	assert.Equal(t, "Ash Ketchum", d.Name(trade.SideOffered))

	press(t, m, runes("d"))
	require.True(t, m.detailPanel.Confirming())
	assert.Zero(t, f.fake.Hits("PATCH /trades/"+tr.ID.String()))

	press(t, m, runes("y"))

	assert.Equal(t, ScreenDirectory, m.Screen())
	stored, ok := f.fake.Trade(tr.ID)
	require.True(t, ok)
	assert.Equal(t, trade.StatusDeclined, stored.Status)
	assert.Equal(t, 1, f.fake.Hits("PATCH /trades/"+tr.ID.String()))
}

func TestCancelledConfirmationSendsNothing(t *testing.T) {
	f := newFixture(t)
	tr := f.proposal(t)
	start := view.DetailRoute(tr.ID)
	m := f.model(t, &f.misty, &start)

	press(t, m, runes("a"))
	require.True(t, m.detailPanel.Confirming())
	press(t, m, runes("n"))

	assert.Equal(t, ScreenDetail, m.Screen())
	assert.False(t, m.detailPanel.Confirming())
	_, pending := m.detailPanel.Detail().Pending()
	assert.False(t, pending)
	assert.Zero(t, f.fake.Hits("PATCH /trades/"+tr.ID.String()))
}

func TestSenderCannotRespond(t *testing.T) {
	f := newFixture(t)
	tr := f.proposal(t)
	start := view.DetailRoute(tr.ID)
	m := f.model(t, &f.ash, &start)

	assert.False(t, m.detailPanel.Detail().ShowsActions())
	press(t, m, runes("a"))
	assert.False(t, m.detailPanel.Confirming())
	assert.Zero(t, f.fake.Hits("PATCH /trades/"+tr.ID.String()))
}

func TestFailedUpdateKeepsStatus(t *testing.T) {
	f := newFixture(t)
	tr := f.proposal(t)
	route := "PATCH /trades/" + tr.ID.String()
	f.fake.Fail(route, http.StatusInternalServerError, map[string]string{"message": "database down"})

	start := view.DetailRoute(tr.ID)
	m := f.model(t, &f.misty, &start)

	press(t, m, runes("a"))
	press(t, m, runes("y"))

	d := m.detailPanel.Detail()
	assert.Equal(t, ScreenDetail, m.Screen())
	assert.Equal(t, view.DetailReady, d.State())
	assert.Equal(t, trade.StatusProposition, d.Trade().Status)
	assert.Equal(t, "Server error: database down. Please check the backend logs or try again.", d.Err())
	assert.True(t, d.CanRespond())
}

func TestUnauthorizedSignsOut(t *testing.T) {
	f := newFixture(t)
	f.fake.Fail("GET /trainers/"+f.ash.ID.String()+"/trades", http.StatusUnauthorized, nil)

	m := f.model(t, &f.ash, nil)

	assert.Equal(t, ScreenLogin, m.Screen())
	assert.False(t, m.Session().Authenticated())
	assert.Equal(t, 1, f.store.cleared)
	assert.Equal(t, "Session expired. Please sign in again.", m.StatusMessage())
}

func TestStaleDetailResultIgnored(t *testing.T) {
	f := newFixture(t)
	tr := f.proposal(t)
	start := view.DetailRoute(tr.ID)
	m := f.model(t, &f.misty, &start)

	old := m.screenGen
	drain(t, m, m.navigate(view.DirectoryRoute()))

	_, cmd := m.Update(detailTradeMsg{screen: old, gen: 1, trade: tr})
	assert.Nil(t, cmd)
	assert.Nil(t, m.detailPanel)
	assert.Equal(t, ScreenDirectory, m.Screen())
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, &f.ash, nil)
	require.Equal(t, ScreenDirectory, m.Screen())

	press(t, m, runes("L"))

	assert.Equal(t, ScreenLogin, m.Screen())
	assert.False(t, m.Session().Authenticated())
	assert.Equal(t, 1, f.store.cleared)
}

func TestViewRendersStatusBar(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, &f.ash, nil)
	m.Update(tea.WindowSizeMsg{Width: 400, Height: 30})

	out := m.View()
	assert.Contains(t, out, "My trades")
	assert.Contains(t, out, "new trade")
	assert.Contains(t, out, "trainer #"+f.ash.ID.String())
}
