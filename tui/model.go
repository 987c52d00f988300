package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/internal/api"
	creatureservice "github.com/zappabad/poketrade/internal/creature/service"
	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/session"
	"github.com/zappabad/poketrade/internal/trade"
	tradeservice "github.com/zappabad/poketrade/internal/trade/service"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/internal/trainer"
	trainerservice "github.com/zappabad/poketrade/internal/trainer/service"
	"github.com/zappabad/poketrade/tui/panels"
	"github.com/zappabad/poketrade/tui/styles"
)

// Screen is the page currently shown.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDirectory
	ScreenDetail
	ScreenComposer
	ScreenSearch
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenDirectory:
		return "directory"
	case ScreenDetail:
		return "detail"
	case ScreenComposer:
		return "composer"
	case ScreenSearch:
		return "search"
	default:
		return "unknown"
	}
}

// SessionStore persists the credential between runs.
type SessionStore interface {
	Save(ctx context.Context, sess session.Session) error
	Clear(ctx context.Context) error
}

// Options wires the model to its collaborators.
type Options struct {
	Client  *api.Client
	Store   SessionStore
	Session session.Session
	Config  Config
	// Start is the first route; nil opens the directory.
	Start *view.Route
}

// Model is the main TUI application model.
type Model struct {
	// Remote access. The services are rebuilt whenever the session changes.
	client    *api.Client
	store     SessionStore
	cfg       Config
	session   session.Session
	trades    *tradeservice.Service
	creatures *creatureservice.Service
	trainers  *trainerservice.Service

	// Navigation. screenGen tags every request so results for a screen that
	// was left are dropped.
	screen    Screen
	route     view.Route
	screenGen uint64

	// Panels
	loginPanel     *panels.LoginPanel
	directoryPanel *panels.DirectoryPanel
	detailPanel    *panels.DetailPanel
	composerPanel  *panels.ComposerPanel
	pickerPanel    *panels.PickerPanel
	searchPanel    *panels.TrainerSearchPanel

	spinner  spinner.Model
	startCmd tea.Cmd

	// Window dimensions
	width  int
	height int

	// Status
	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model and opens the start route.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	def := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.ResolveConcurrency <= 0 {
		cfg.ResolveConcurrency = def.ResolveConcurrency
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.PrimaryColor)

	m := &Model{
		client:     opts.Client,
		store:      opts.Store,
		cfg:        cfg,
		spinner:    sp,
		loginPanel: panels.NewLoginPanel(),
	}
	m.bind(opts.Session)

	start := view.DirectoryRoute()
	if opts.Start != nil {
		start = *opts.Start
	}
	m.startCmd = m.navigate(start)
	return m
}

// bind switches the model to a session and rebuilds the services on a
// client carrying its credential.
func (m *Model) bind(sess session.Session) {
	m.session = sess
	if !sess.Authenticated() {
		m.trades, m.creatures, m.trainers = nil, nil, nil
		return
	}

	client := m.client.WithToken(sess.Token)
	m.creatures = creatureservice.NewService(client, creatureservice.Config{Concurrency: m.cfg.ResolveConcurrency})
	m.trainers = trainerservice.NewService(client, trainerservice.DefaultConfig())
	m.trades = tradeservice.NewService(client, m.creatures, m.trainers, tradeservice.Config{PageSize: m.cfg.PageSize})
}

// Screen returns the page currently shown.
func (m *Model) Screen() Screen { return m.screen }

// Route returns the route of the current page.
func (m *Model) Route() view.Route { return m.route }

// Session returns the active session.
func (m *Model) Session() session.Session { return m.session }

// StatusMessage returns the last status line.
func (m *Model) StatusMessage() string { return m.statusMsg }

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCmd)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if r, ok := msg.(remoteResult); ok && api.IsStatus(r.failure(), http.StatusUnauthorized) {
		return m, m.signOut("Session expired. Please sign in again.")
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.screen == ScreenDirectory {
				return m, tea.Quit
			}
		}
		return m, m.updateActivePanel(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case panels.NavigateMsg:
		return m, m.navigate(msg.Route)

	case panels.LoginSubmitMsg:
		return m, m.login(msg.Login, msg.Password)

	case loginResultMsg:
		return m, m.handleLogin(msg)

	case panels.LogoutMsg:
		return m, m.signOut("Signed out")

	case panels.ReloadDirectoryMsg:
		if m.screen == ScreenDirectory {
			return m, m.loadDirectory()
		}

	case directoryPageMsg:
		if msg.screen == m.screenGen && m.directoryPanel != nil {
			if m.directoryPanel.Directory().ApplyPage(msg.gen, msg.items, msg.err) {
				m.directoryPanel.PageLoaded()
			}
		}

	case detailTradeMsg:
		return m, m.handleTrade(msg)

	case detailSideMsg:
		if msg.screen == m.screenGen && m.detailPanel != nil {
			m.detailPanel.Detail().ApplySide(msg.gen, msg.side, msg.resolved)
		}

	case detailTrainerMsg:
		if msg.screen == m.screenGen && m.detailPanel != nil {
			m.detailPanel.Detail().ApplyTrainer(msg.gen, msg.id, msg.trainer, msg.err)
		}

	case panels.ConfirmResultMsg:
		if m.detailPanel != nil {
			var cmd tea.Cmd
			m.detailPanel, cmd = m.detailPanel.Update(msg)
			return m, cmd
		}

	case panels.RespondMsg:
		return m, m.respond(msg)

	case respondResultMsg:
		return m, m.handleRespond(msg)

	case receiverMsg:
		if msg.screen == m.screenGen && m.composerPanel != nil {
			m.composerPanel.Composer().ApplyReceiver(msg.trainer, msg.err)
		}

	case panels.OpenPickerMsg:
		return m, m.openPicker(msg.Request)

	case poolMsg:
		if msg.screen == m.screenGen && m.pickerPanel != nil && m.pickerPanel.Request().Slot == msg.request.Slot &&
			m.pickerPanel.Request().Side == msg.request.Side {
			m.pickerPanel.SetPool(msg.pool, msg.err)
		}

	case panels.PickMsg:
		m.closePicker()
		return m, m.fetchSelection(msg)

	case panels.PickerClosedMsg:
		m.closePicker()

	case selectionMsg:
		if msg.screen == m.screenGen && m.composerPanel != nil {
			if err := m.composerPanel.Composer().ApplySelection(msg.side, msg.slot, msg.creature, msg.err); err != nil {
				logger.UI(m.screen.String()).Debug("Selection not applied", "side", msg.side, "slot", msg.slot, "err", err)
			}
		}

	case panels.SubmitTradeMsg:
		return m, m.submit(msg.Request)

	case submitResultMsg:
		return m, m.handleSubmit(msg)

	case panels.SearchTrainersMsg:
		return m, m.search(msg.Params)

	case searchResultMsg:
		if msg.screen == m.screenGen && m.searchPanel != nil {
			m.searchPanel.SetResults(msg.items, msg.err)
		}

	default:
		return m, m.updateActivePanel(msg)
	}

	return m, nil
}

func (m *Model) updateActivePanel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if m.pickerPanel != nil {
		m.pickerPanel, cmd = m.pickerPanel.Update(msg)
		return cmd
	}

	switch m.screen {
	case ScreenLogin:
		m.loginPanel, cmd = m.loginPanel.Update(msg)
	case ScreenDirectory:
		m.directoryPanel, cmd = m.directoryPanel.Update(msg)
	case ScreenDetail:
		m.detailPanel, cmd = m.detailPanel.Update(msg)
	case ScreenComposer:
		m.composerPanel, cmd = m.composerPanel.Update(msg)
	case ScreenSearch:
		m.searchPanel, cmd = m.searchPanel.Update(msg)
	}
	return cmd
}

// navigate leaves the current page and opens r. Everything but the login
// page requires a session.
func (m *Model) navigate(r view.Route) tea.Cmd {
	if r.Kind != view.RouteLogin && !m.session.Authenticated() {
		r = view.Route{Kind: view.RouteLogin}
	}

	if m.detailPanel != nil {
		m.detailPanel.Detail().Close()
	}
	m.directoryPanel, m.detailPanel, m.composerPanel, m.pickerPanel, m.searchPanel = nil, nil, nil, nil, nil
	m.screenGen++
	m.route = r

	var cmd tea.Cmd
	switch r.Kind {
	case view.RouteLogin:
		m.screen = ScreenLogin
		m.loginPanel = panels.NewLoginPanel()
		cmd = m.loginPanel.Init()

	case view.RouteTradeDirectory:
		m.screen = ScreenDirectory
		d := view.NewDirectory(m.session, m.cfg.PageSize)
		m.directoryPanel = panels.NewDirectoryPanel(d, m.session.TrainerID)
		cmd = m.loadDirectory()

	case view.RouteTradeDetail:
		m.screen = ScreenDetail
		d := view.NewDetail(m.session)
		m.detailPanel = panels.NewDetailPanel(d)
		cmd = m.loadTrade(d.Begin(r.TradeID), r.TradeID)

	case view.RouteTradeCreate:
		m.screen = ScreenComposer
		c := view.NewComposer(m.session, r.ReceiverID)
		m.composerPanel = panels.NewComposerPanel(c)
		if id, ok := c.ReceiverID(); ok {
			cmd = m.fetchReceiver(id)
		}

	case view.RouteTrainerSearch:
		m.screen = ScreenSearch
		m.searchPanel = panels.NewTrainerSearchPanel(m.session.TrainerID)
		cmd = m.searchPanel.Init()
	}

	m.syncFocus()
	logger.UI(m.screen.String()).Debug("Navigated", "route", r.Path())
	return cmd
}

func (m *Model) syncFocus() {
	picking := m.pickerPanel != nil
	m.loginPanel.SetFocus(m.screen == ScreenLogin)
	if m.directoryPanel != nil {
		m.directoryPanel.SetFocus(m.screen == ScreenDirectory)
	}
	if m.detailPanel != nil {
		m.detailPanel.SetFocus(m.screen == ScreenDetail)
	}
	if m.composerPanel != nil {
		m.composerPanel.SetFocus(m.screen == ScreenComposer && !picking)
	}
	if m.pickerPanel != nil {
		m.pickerPanel.SetFocus(true)
	}
	if m.searchPanel != nil {
		m.searchPanel.SetFocus(m.screen == ScreenSearch)
	}
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func (m *Model) login(login, password string) tea.Cmd {
	client, timeout := m.client, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		auth, err := client.Login(ctx, login, password)
		return loginResultMsg{auth: auth, err: err}
	}
}

func (m *Model) handleLogin(msg loginResultMsg) tea.Cmd {
	if m.screen != ScreenLogin {
		return nil
	}
	if msg.err != nil {
		m.loginPanel.SetResult(api.Message(msg.err))
		return nil
	}
	if msg.auth.AccessToken == "" {
		m.loginPanel.SetResult("Login failed: no token received")
		return nil
	}

	sess := session.New(msg.auth.AccessToken, msg.auth.TrainerID)
	if m.store != nil {
		if err := m.store.Save(context.Background(), sess); err != nil {
			logger.UI("login").Warn("Could not persist session", "err", err)
		}
	}
	m.bind(sess)
	m.loginPanel.SetResult("")
	m.statusMsg = fmt.Sprintf("Signed in as trainer #%d", sess.TrainerID)
	return m.navigate(view.DirectoryRoute())
}

// signOut drops the session everywhere and returns to the login page.
func (m *Model) signOut(reason string) tea.Cmd {
	if m.store != nil {
		if err := m.store.Clear(context.Background()); err != nil {
			logger.UI(m.screen.String()).Warn("Could not clear session", "err", err)
		}
	}
	m.bind(session.Session{})
	m.statusMsg = reason
	return m.navigate(view.Route{Kind: view.RouteLogin})
}

func (m *Model) loadDirectory() tea.Cmd {
	if m.directoryPanel == nil {
		return nil
	}
	params, gen, err := m.directoryPanel.Directory().Begin()
	if err != nil {
		return nil
	}

	trades, owner := m.trades, m.session.TrainerID
	screen, timeout := m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		items, err := trades.List(ctx, owner, params)
		return directoryPageMsg{screen: screen, gen: gen, items: items, err: err}
	}
}

func (m *Model) loadTrade(gen uint64, id trade.ID) tea.Cmd {
	trades, screen, timeout := m.trades, m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		t, err := trades.FetchTrade(ctx, id)
		return detailTradeMsg{screen: screen, gen: gen, trade: t, err: err}
	}
}

// handleTrade applies the fetched record and fans out the per-side creature
// lookups and both trainer lookups. Each result is merged as it arrives.
func (m *Model) handleTrade(msg detailTradeMsg) tea.Cmd {
	if msg.screen != m.screenGen || m.detailPanel == nil {
		return nil
	}
	if !m.detailPanel.Detail().ApplyTrade(msg.gen, msg.trade, msg.err) || msg.err != nil {
		return nil
	}

	t := msg.trade
	trades, screen, gen, timeout := m.trades, msg.screen, msg.gen, m.cfg.RequestTimeout

	cmds := make([]tea.Cmd, 0, 4)
	for _, side := range []trade.Side{trade.SideOffered, trade.SideWanted} {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := requestContext(timeout)
			defer cancel()
			return detailSideMsg{screen: screen, gen: gen, side: side, resolved: trades.ResolveSide(ctx, t, side)}
		})
	}

	ids := []trainer.ID{t.Sender.ID}
	if t.Receiver.ID != t.Sender.ID {
		ids = append(ids, t.Receiver.ID)
	}
	for _, id := range ids {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := requestContext(timeout)
			defer cancel()
			tr, err := trades.ResolveTrainer(ctx, id)
			return detailTrainerMsg{screen: screen, gen: gen, id: id, trainer: tr, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) respond(msg panels.RespondMsg) tea.Cmd {
	if m.detailPanel == nil || m.trades == nil {
		return nil
	}
	trades, screen, timeout := m.trades, m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		_, err := trades.Respond(ctx, msg.TradeID, msg.Request.Status)
		return respondResultMsg{screen: screen, gen: msg.Gen, err: err}
	}
}

func (m *Model) handleRespond(msg respondResultMsg) tea.Cmd {
	if msg.screen != m.screenGen || m.detailPanel == nil {
		return nil
	}
	d := m.detailPanel.Detail()
	if !d.ApplyResponse(msg.gen, msg.err) {
		return nil
	}
	r, ok := d.Route()
	if !ok {
		return nil
	}
	if t := d.Trade(); t != nil {
		m.statusMsg = fmt.Sprintf("Trade #%d %s", t.ID, strings.ToLower(string(t.Status)))
	}
	return m.navigate(r)
}

func (m *Model) fetchReceiver(id trainer.ID) tea.Cmd {
	trainers, screen, timeout := m.trainers, m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		t, err := trainers.Get(ctx, id)
		return receiverMsg{screen: screen, trainer: t, err: err}
	}
}

func (m *Model) openPicker(req view.PickerRequest) tea.Cmd {
	if m.composerPanel == nil {
		return nil
	}
	m.pickerPanel = panels.NewPickerPanel(req)
	m.pickerPanel.SetSize(m.width, m.bodyHeight())
	m.syncFocus()

	creatures, screen, timeout := m.creatures, m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		pool, err := creatures.Pool(ctx, req.OwnerID)
		return poolMsg{screen: screen, request: req, pool: pool, err: err}
	}
}

func (m *Model) closePicker() {
	m.pickerPanel = nil
	m.syncFocus()
}

func (m *Model) fetchSelection(pick panels.PickMsg) tea.Cmd {
	if m.composerPanel == nil {
		return nil
	}
	creatures, screen, timeout := m.creatures, m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		c, err := creatures.Get(ctx, pick.ID)
		return selectionMsg{screen: screen, side: pick.Side, slot: pick.Slot, creature: c, err: err}
	}
}

func (m *Model) submit(req trade.CreateRequest) tea.Cmd {
	if m.composerPanel == nil {
		return nil
	}
	trades, screen, timeout := m.trades, m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		created, err := trades.Create(ctx, req)
		return submitResultMsg{screen: screen, created: created, err: err}
	}
}

func (m *Model) handleSubmit(msg submitResultMsg) tea.Cmd {
	if msg.screen != m.screenGen || m.composerPanel == nil {
		return nil
	}
	c := m.composerPanel.Composer()
	if !c.ApplySubmitResult(msg.created, msg.err) {
		return nil
	}
	r, ok := c.Route()
	if !ok {
		return nil
	}
	m.statusMsg = fmt.Sprintf("Trade #%d proposed", msg.created.ID)
	return m.navigate(r)
}

func (m *Model) search(p trainer.SearchParams) tea.Cmd {
	if m.searchPanel == nil {
		return nil
	}
	trainers, screen, timeout := m.trainers, m.screenGen, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		items, err := trainers.Search(ctx, p)
		return searchResultMsg{screen: screen, items: items, err: err}
	}
}

// busy reports whether the current page waits on the network.
func (m *Model) busy() bool {
	if m.pickerPanel != nil && m.pickerPanel.Loading() {
		return true
	}
	switch m.screen {
	case ScreenLogin:
		return m.loginPanel.Busy()
	case ScreenDirectory:
		return m.directoryPanel.Directory().Loading()
	case ScreenDetail:
		d := m.detailPanel.Detail()
		switch d.State() {
		case view.DetailLoading, view.DetailUpdating:
			return true
		case view.DetailReady:
			return !d.Hydrated()
		}
	case ScreenComposer:
		switch m.composerPanel.Composer().State() {
		case view.ComposerLoading, view.ComposerSubmitting:
			return true
		}
	case ScreenSearch:
		return m.searchPanel.Busy()
	}
	return false
}

func (m *Model) bodyHeight() int {
	return max(m.height-4, 0)
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Layout:
	// ┌──────────────────────────────┐
	// │ PokéTrade          trainer   │
	// ├──────────────────────────────┤
	// │ current page (or picker)     │
	// ├──────────────────────────────┤
	// │ status bar                   │
	// └──────────────────────────────┘

	header := m.renderHeader()

	var body string
	switch {
	case m.pickerPanel != nil:
		m.pickerPanel.SetSize(m.width, m.bodyHeight())
		body = m.pickerPanel.View()
	case m.screen == ScreenLogin:
		m.loginPanel.SetSize(m.width, m.bodyHeight())
		body = m.loginPanel.View()
	case m.screen == ScreenDirectory:
		m.directoryPanel.SetSize(m.width, m.bodyHeight())
		body = m.directoryPanel.View()
	case m.screen == ScreenDetail:
		m.detailPanel.SetSize(m.width, m.bodyHeight())
		body = m.detailPanel.View()
	case m.screen == ScreenComposer:
		m.composerPanel.SetSize(m.width, m.bodyHeight())
		body = m.composerPanel.View()
	case m.screen == ScreenSearch:
		m.searchPanel.SetSize(m.width, m.bodyHeight())
		body = m.searchPanel.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatusBar())
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("PokéTrade")
	who := styles.MutedStyle.Render("not signed in")
	if m.session.HasTrainer() {
		who = styles.LabelStyle.Render(fmt.Sprintf("trainer #%d", m.session.TrainerID))
	}
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(who), 1)
	return title + strings.Repeat(" ", gap) + who
}

func (m *Model) help() panels.Help {
	switch {
	case m.pickerPanel != nil:
		return panels.PickerHelp
	case m.screen == ScreenLogin:
		return panels.LoginHelp
	case m.screen == ScreenDirectory:
		return panels.DirectoryHelp
	case m.screen == ScreenDetail:
		if m.detailPanel.Confirming() {
			return panels.ConfirmHelp
		}
		return panels.DetailHelp
	case m.screen == ScreenComposer:
		return panels.ComposerHelp
	case m.screen == ScreenSearch:
		return panels.SearchHelp
	}
	return nil
}

func (m *Model) renderStatusBar() string {
	bindings := m.help()
	parts := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		parts = append(parts, renderBinding(b))
	}
	parts = append(parts, styles.StatusBarKeyStyle.Render("ctrl+c")+styles.StatusBarDescStyle.Render(" quit"))
	helpStr := strings.Join(parts, " │ ")

	status := ""
	if m.busy() {
		status = " │ " + m.spinner.View()
	}
	if m.statusMsg != "" {
		status += " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(helpStr + status)
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return styles.StatusBarKeyStyle.Render(h.Key) + styles.StatusBarDescStyle.Render(" "+h.Desc)
}
