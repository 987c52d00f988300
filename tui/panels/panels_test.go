package panels

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/session"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/internal/trainer"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// result runs a command that must produce exactly one message.
func result(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}

func readyComposer(t *testing.T) *view.Composer {
	t.Helper()
	receiver := trainer.ID(2)
	c := view.NewComposer(session.New("tok", 1), &receiver)
	if !c.ApplyReceiver(trainer.Trainer{ID: 2, FirstName: "Misty"}, nil) {
		t.Fatal("receiver not applied")
	}
	return c
}

func TestComposerEmptySubmitEmitsNothing(t *testing.T) {
	p := NewComposerPanel(readyComposer(t))
	p.SetFocus(true)

	_, cmd := p.Update(runeKey("s"))
	if cmd != nil {
		t.Fatalf("expected no command, got %T", cmd())
	}
	if got := p.Composer().Err(); got != view.MsgEmptyTrade {
		t.Errorf("Err = %q, want %q", got, view.MsgEmptyTrade)
	}
	if !strings.Contains(p.View(), view.MsgEmptyTrade) {
		t.Error("expected the validation message to be rendered")
	}
}

func TestComposerSubmitEmitsRequest(t *testing.T) {
	c := readyComposer(t)
	if err := c.ApplySelection(trade.SideWanted, 0, creature.Creature{ID: 30, Species: "Staryu", TrainerID: 2}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := NewComposerPanel(c)
	p.SetFocus(true)

	_, cmd := p.Update(runeKey("s"))
	msg, ok := result(t, cmd).(SubmitTradeMsg)
	if !ok {
		t.Fatal("expected SubmitTradeMsg")
	}
	if msg.Request.ReceiverID != 2 || len(msg.Request.OfferedIDs) != 0 || len(msg.Request.WantedIDs) != 1 {
		t.Errorf("unexpected request %+v", msg.Request)
	}
	if c.State() != view.ComposerSubmitting {
		t.Errorf("state = %v, want submitting", c.State())
	}
}

func TestComposerOpensPickerForCursor(t *testing.T) {
	c := readyComposer(t)
	if err := c.ApplySelection(trade.SideOffered, 0, creature.Creature{ID: 10, Species: "Pikachu", TrainerID: 1}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := NewComposerPanel(c)
	p.SetFocus(true)

	p.Update(downKey)
	_, cmd := p.Update(enterKey)
	msg, ok := result(t, cmd).(OpenPickerMsg)
	if !ok {
		t.Fatal("expected OpenPickerMsg")
	}
	req := msg.Request
	if req.Side != trade.SideOffered || req.Slot != 1 || req.OwnerID != 1 {
		t.Errorf("unexpected request %+v", req)
	}
	if len(req.Exclude) != 1 || req.Exclude[0] != 10 {
		t.Errorf("Exclude = %v, want [10]", req.Exclude)
	}
}

func TestComposerRemoveClearsSlot(t *testing.T) {
	c := readyComposer(t)
	_ = c.ApplySelection(trade.SideOffered, 0, creature.Creature{ID: 10, Species: "Pikachu"}, nil)
	p := NewComposerPanel(c)
	p.SetFocus(true)

	p.Update(runeKey("x"))
	offered := c.Slots(trade.SideOffered)
	if !offered.Empty() {
		t.Error("expected the slot to be cleared")
	}
}

func TestComposerUnfocusedIgnoresKeys(t *testing.T) {
	p := NewComposerPanel(readyComposer(t))

	if _, cmd := p.Update(enterKey); cmd != nil {
		t.Error("unfocused panel should not react")
	}
}

func TestPickerSkipsSelectedCreatures(t *testing.T) {
	req := view.PickerRequest{Side: trade.SideOffered, Slot: 2, OwnerID: 1, Exclude: []creature.ID{10}}
	p := NewPickerPanel(req)
	p.SetFocus(true)
	p.SetPool([]creature.ListItem{{ID: 10, Species: "Pikachu"}, {ID: 11, Species: "Eevee"}}, nil)

	if p.Loading() {
		t.Fatal("expected the pool to be loaded")
	}
	_, cmd := p.Update(enterKey)
	msg, ok := result(t, cmd).(PickMsg)
	if !ok {
		t.Fatal("expected PickMsg")
	}
	if msg.ID != 11 || msg.Slot != 2 || msg.Side != trade.SideOffered {
		t.Errorf("unexpected pick %+v", msg)
	}
	if !strings.Contains(p.View(), "(selected)") {
		t.Error("expected the excluded creature to be marked")
	}
}

func TestPickerEverythingSelected(t *testing.T) {
	req := view.PickerRequest{Side: trade.SideOffered, OwnerID: 1, Exclude: []creature.ID{10}}
	p := NewPickerPanel(req)
	p.SetFocus(true)
	p.SetPool([]creature.ListItem{{ID: 10, Species: "Pikachu"}}, nil)

	if _, cmd := p.Update(enterKey); cmd != nil {
		t.Error("expected no pick when every creature is already selected")
	}
	if p.Err() != view.MsgNothingToChoose {
		t.Errorf("Err = %q, want %q", p.Err(), view.MsgNothingToChoose)
	}
}

func TestPickerPoolFailure(t *testing.T) {
	p := NewPickerPanel(view.PickerRequest{Side: trade.SideWanted, OwnerID: 2})
	p.SetFocus(true)
	p.SetPool(nil, errors.New("boom"))

	if p.Err() != "boom" {
		t.Errorf("Err = %q, want boom", p.Err())
	}
	if _, cmd := p.Update(enterKey); cmd != nil {
		t.Error("nothing can be chosen without a pool")
	}
	_, cmd := p.Update(escKey)
	if _, ok := result(t, cmd).(PickerClosedMsg); !ok {
		t.Error("expected PickerClosedMsg on esc")
	}
}

func loadedDetailPanel(t *testing.T, viewer trainer.ID) *DetailPanel {
	t.Helper()
	d := view.NewDetail(session.New("tok", viewer))
	gen := d.Begin(9)
	tr := trade.Trade{
		ID:       9,
		Status:   trade.StatusProposition,
		Sender:   trade.Party{ID: 1, Creatures: []creature.ID{10}},
		Receiver: trade.Party{ID: 2, Creatures: []creature.ID{30}},
	}
	if !d.ApplyTrade(gen, tr, nil) {
		t.Fatal("trade not applied")
	}
	p := NewDetailPanel(d)
	p.SetFocus(true)
	return p
}

func TestDetailSenderHasNoActions(t *testing.T) {
	p := loadedDetailPanel(t, 1)

	for _, k := range []string{"a", "d"} {
		if _, cmd := p.Update(runeKey(k)); cmd != nil {
			t.Errorf("%s: expected no command", k)
		}
		if p.Confirming() {
			t.Errorf("%s: sender must not be asked to confirm", k)
		}
	}
	if strings.Contains(p.View(), "accept") {
		t.Error("sender view should not offer accept")
	}
}

func TestDetailDeclineNeedsConfirmation(t *testing.T) {
	p := loadedDetailPanel(t, 2)

	if _, cmd := p.Update(runeKey("d")); cmd != nil {
		t.Fatal("requesting a decision must not send anything")
	}
	if !p.Confirming() {
		t.Fatal("expected a confirmation prompt")
	}
	if !strings.Contains(p.View(), "Are you sure you want to decline this trade?") {
		t.Error("expected the decline prompt")
	}

	_, cmd := p.Update(runeKey("y"))
	confirm, ok := result(t, cmd).(ConfirmResultMsg)
	if !ok || !confirm.Confirmed {
		t.Fatal("expected a positive ConfirmResultMsg")
	}

	_, cmd = p.Update(confirm)
	msg, ok := result(t, cmd).(RespondMsg)
	if !ok {
		t.Fatal("expected RespondMsg")
	}
	if msg.TradeID != 9 || msg.Request.Status != trade.StatusDeclined {
		t.Errorf("unexpected response %+v", msg)
	}
	if msg.Gen != p.Detail().Generation() {
		t.Errorf("Gen = %d, want %d", msg.Gen, p.Detail().Generation())
	}
	if p.Detail().State() != view.DetailUpdating {
		t.Errorf("state = %v, want updating", p.Detail().State())
	}
}

func TestDetailCancelledConfirmation(t *testing.T) {
	p := loadedDetailPanel(t, 2)

	p.Update(runeKey("a"))
	_, cmd := p.Update(runeKey("n"))
	confirm, ok := result(t, cmd).(ConfirmResultMsg)
	if !ok || confirm.Confirmed {
		t.Fatal("expected a negative ConfirmResultMsg")
	}
	if _, cmd := p.Update(confirm); cmd != nil {
		t.Error("a cancelled decision must not be sent")
	}
	if _, pending := p.Detail().Pending(); pending {
		t.Error("pending decision should be dropped")
	}
}

func TestDirectoryKeys(t *testing.T) {
	d := view.NewDirectory(session.New("tok", 1), 2)
	_, gen, err := d.Begin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := []trade.ListItem{
		{ID: 5, Status: trade.StatusProposition, Sender: trade.PartyRef{ID: 1}, Receiver: trade.PartyRef{ID: 2}},
		{ID: 4, Status: trade.StatusAccepted, Sender: trade.PartyRef{ID: 3}, Receiver: trade.PartyRef{ID: 1}},
	}
	d.ApplyPage(gen, items, nil)

	p := NewDirectoryPanel(d, 1)
	p.SetFocus(true)

	p.Update(downKey)
	_, cmd := p.Update(enterKey)
	nav, ok := result(t, cmd).(NavigateMsg)
	if !ok || nav.Route != view.DetailRoute(4) {
		t.Fatalf("expected navigation to trade 4, got %+v", nav)
	}

	_, cmd = p.Update(runeKey("f"))
	if _, ok := result(t, cmd).(ReloadDirectoryMsg); !ok {
		t.Error("expected a reload after changing the filter")
	}
	if d.Params().Status != trade.StatusProposition {
		t.Errorf("status = %q, want PROPOSITION", d.Params().Status)
	}

	_, cmd = p.Update(runeKey("]"))
	if _, ok := result(t, cmd).(ReloadDirectoryMsg); !ok {
		t.Error("a full page allows moving forward")
	}
	if d.Params().Page != 1 {
		t.Errorf("page = %d, want 1", d.Params().Page)
	}

	out := p.View()
	if !strings.Contains(out, "received") || !strings.Contains(out, "sent") {
		t.Error("expected both directions to be rendered")
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	p := NewLoginPanel()
	p.SetFocus(true)
	p.current = fieldPassword

	if _, cmd := p.Update(enterKey); cmd != nil {
		t.Fatal("empty form must not be submitted")
	}
	if p.Err() == "" {
		t.Error("expected a validation message")
	}

	p.loginInput.SetValue(" ash ")
	p.passwordInput.SetValue("pikachu")
	_, cmd := p.Update(enterKey)
	msg, ok := result(t, cmd).(LoginSubmitMsg)
	if !ok {
		t.Fatal("expected LoginSubmitMsg")
	}
	if msg.Login != "ash" || msg.Password != "pikachu" {
		t.Errorf("unexpected credentials %+v", msg)
	}
	if !p.Busy() {
		t.Error("expected the panel to be busy")
	}

	p.SetResult("Invalid login or password")
	if p.Busy() || p.passwordInput.Value() != "" {
		t.Error("a failed attempt should reset the password")
	}
}

func TestSearchHidesSelf(t *testing.T) {
	p := NewTrainerSearchPanel(1)
	p.SetFocus(true)

	_, cmd := p.Update(enterKey)
	if _, ok := result(t, cmd).(SearchTrainersMsg); !ok {
		t.Fatal("expected SearchTrainersMsg")
	}

	p.SetResults([]trainer.ListItem{{ID: 1, Login: "ash"}, {ID: 2, Login: "misty"}}, nil)
	if got := p.Results(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("results = %+v, want only misty", got)
	}

	_, cmd = p.Update(enterKey)
	nav, ok := result(t, cmd).(NavigateMsg)
	if !ok {
		t.Fatal("expected NavigateMsg")
	}
	id := nav.Route.ReceiverID
	if nav.Route.Kind != view.RouteTradeCreate || id == nil || *id != 2 {
		t.Errorf("unexpected route %+v", nav.Route)
	}
}

func TestFormatResolvedFailure(t *testing.T) {
	got := FormatResolved(creature.Resolved{ID: 7, Err: errors.New("gone")})
	if !strings.Contains(got, "unavailable: gone") {
		t.Errorf("got %q", got)
	}
	ok := FormatResolved(creature.Resolved{ID: 7, Creature: &creature.Creature{ID: 7, Species: "Eevee", Level: 3}})
	if !strings.Contains(ok, "Eevee") || !strings.Contains(ok, "Lv.3") {
		t.Errorf("got %q", ok)
	}
}
