package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/config"
	"github.com/zappabad/poketrade/internal/creature"
	creatureservice "github.com/zappabad/poketrade/internal/creature/service"
	"github.com/zappabad/poketrade/internal/logger"
	"github.com/zappabad/poketrade/internal/session"
	"github.com/zappabad/poketrade/internal/trade"
	tradeservice "github.com/zappabad/poketrade/internal/trade/service"
	"github.com/zappabad/poketrade/internal/trade/view"
	trainerservice "github.com/zappabad/poketrade/internal/trainer/service"
	"github.com/zappabad/poketrade/tui"
	"github.com/zappabad/poketrade/tui/panels"
)

const usage = `Usage: poketrade [flags] [command]

Commands:
  tui                     interactive client (default)
  login -u <login>        sign in; the password is read from POKETRADE_PASSWORD or stdin
  subscribe -u <login> -f <first> -n <last> -b <YYYY-MM-DD>
                          create a trainer account and sign in; password as for login
  logout                  forget the cached session
  whoami                  show the signed-in trainer
  trades [-s status] [-p page]
                          print a page of your trades
  trade <id>              print one trade with its Pokémon
  open <path>             start the client on a route such as /trades/3

Flags:
  -a, -api <url>          API base URL (default: $POKETRADE_API_URL)
  -d, -db <path>          session database path (default: $POKETRADE_SESSION_DB)
  -l, -log <path>         log file, "-" for stderr (default: $POKETRADE_LOG_FILE)
  -v, -level <level>      log level: debug, info, warn, error
  -h, -help               show this help and exit
`

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	store   *session.Store
	client  *api.Client
	session session.Session
	out     io.Writer
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("poketrade", flag.ContinueOnError)
	fs.StringVar(&cfg.API.BaseURL, "api", cfg.API.BaseURL, "")
	fs.StringVar(&cfg.API.BaseURL, "a", cfg.API.BaseURL, "")
	fs.StringVar(&cfg.Session.DBPath, "db", cfg.Session.DBPath, "")
	fs.StringVar(&cfg.Session.DBPath, "d", cfg.Session.DBPath, "")
	fs.StringVar(&cfg.Log.File, "log", cfg.Log.File, "")
	fs.StringVar(&cfg.Log.File, "l", cfg.Log.File, "")
	fs.StringVar(&cfg.Log.Level, "level", cfg.Log.Level, "")
	fs.StringVar(&cfg.Log.Level, "v", cfg.Log.Level, "")
	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	command, rest := "tui", []string(nil)
	if fs.NArg() > 0 {
		command, rest = fs.Arg(0), fs.Args()[1:]
	}

	closeLog, err := setupLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	a, err := newApp(cfg)
	if err != nil {
		logger.Get().Error("Startup failed", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer a.store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "tui":
		err = a.runTUI(nil)
	case "open":
		err = a.open(rest)
	case "login":
		err = a.login(ctx, rest)
	case "subscribe":
		err = a.subscribe(ctx, rest)
	case "logout":
		err = a.logout(ctx)
	case "whoami":
		err = a.whoami(ctx)
	case "trades":
		err = a.trades(ctx, rest)
	case "trade":
		err = a.trade(ctx, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fs.Usage()
		return 2
	}

	if err != nil {
		logger.Get().Error("Command failed", "command", command, "err", err)
		fmt.Fprintf(os.Stderr, "error: %s\n", api.Message(err))
		return 1
	}
	return 0
}

// setupLogger sends logs to a file because the TUI owns the terminal. "-"
// selects stderr for scripted use.
func setupLogger(path, level string) (func(), error) {
	if path == "" || path == "-" {
		logger.Initialize(level, os.Stderr)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.Initialize(level, f)
	return func() { f.Close() }, nil
}

func newApp(cfg *config.Config) (*app, error) {
	store, err := session.Open(cfg.Session.DBPath)
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		OnUnauthorized: func() {
			if err := store.Clear(context.Background()); err != nil {
				logger.Storage().Warn("Could not clear session after 401", "err", err)
			}
		},
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	a := &app{cfg: cfg, store: store, client: client, out: os.Stdout}

	sess, err := store.Load(context.Background())
	switch {
	case err == nil:
		a.session = sess
	case errors.Is(err, session.ErrExpired):
		logger.Storage().Info("Cached session expired")
	case errors.Is(err, session.ErrNoSession):
	default:
		store.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) runTUI(start *view.Route) error {
	model := tui.NewModel(tui.Options{
		Client:  a.client,
		Store:   a.store,
		Session: a.session,
		Start:   start,
		Config: tui.Config{
			PageSize:           a.cfg.Trades.PageSize,
			ResolveConcurrency: a.cfg.Trades.ResolveConcurrency,
			RequestTimeout:     a.cfg.API.Timeout,
		},
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func (a *app) open(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: poketrade open <path>")
	}
	r, err := view.ParseRoute(args[0])
	if err != nil {
		return err
	}
	return a.runTUI(&r)
}

func (a *app) services() (*tradeservice.Service, *trainerservice.Service) {
	client := a.client.WithToken(a.session.Token)
	creatures := creatureservice.NewService(client, creatureservice.Config{Concurrency: a.cfg.Trades.ResolveConcurrency})
	trainers := trainerservice.NewService(client, trainerservice.DefaultConfig())
	trades := tradeservice.NewService(client, creatures, trainers, tradeservice.Config{PageSize: a.cfg.Trades.PageSize})
	return trades, trainers
}

func (a *app) requireSession() error {
	if !a.session.Authenticated() {
		return errors.New("not signed in; run poketrade login -u <login>")
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	var login string
	fs.StringVar(&login, "user", "", "")
	fs.StringVar(&login, "u", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if login == "" {
		return errors.New("usage: poketrade login -u <login>")
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	auth, err := a.client.Login(ctx, login, password)
	if err != nil {
		return err
	}
	return a.signIn(ctx, login, auth)
}

func (a *app) subscribe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("subscribe", flag.ContinueOnError)
	var req api.SubscribeRequest
	fs.StringVar(&req.Login, "user", "", "")
	fs.StringVar(&req.Login, "u", "", "")
	fs.StringVar(&req.FirstName, "first", "", "")
	fs.StringVar(&req.FirstName, "f", "", "")
	fs.StringVar(&req.LastName, "last", "", "")
	fs.StringVar(&req.LastName, "n", "", "")
	fs.StringVar(&req.BirthDate, "birth", "", "")
	fs.StringVar(&req.BirthDate, "b", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Login == "" || req.FirstName == "" || req.LastName == "" || req.BirthDate == "" {
		return errors.New("usage: poketrade subscribe -u <login> -f <first> -n <last> -b <YYYY-MM-DD>")
	}
	if _, err := time.Parse(time.DateOnly, req.BirthDate); err != nil {
		return fmt.Errorf("birth date %q must be YYYY-MM-DD", req.BirthDate)
	}

	password, err := readPassword()
	if err != nil {
		return err
	}
	req.Password = password

	auth, err := a.client.Subscribe(ctx, req)
	if err != nil {
		return err
	}
	return a.signIn(ctx, req.Login, auth)
}

// signIn caches the session returned by login or subscribe.
func (a *app) signIn(ctx context.Context, login string, auth api.Auth) error {
	sess := session.New(auth.AccessToken, auth.TrainerID)
	if err := a.store.Save(ctx, sess); err != nil {
		return err
	}
	a.session = sess

	fmt.Fprintf(a.out, "Signed in as %s (trainer #%d)\n", login, auth.TrainerID)
	if exp, ok := session.ExpiresAt(auth.AccessToken); ok {
		fmt.Fprintf(a.out, "Token valid until %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func readPassword() (string, error) {
	if pw := os.Getenv("POKETRADE_PASSWORD"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if !a.session.HasTrainer() {
		fmt.Fprintln(a.out, "Signed in, trainer id unknown")
		return nil
	}

	_, trainers := a.services()
	fmt.Fprintf(a.out, "%s (trainer #%d)\n", trainers.Name(ctx, a.session.TrainerID), a.session.TrainerID)
	if exp, ok := session.ExpiresAt(a.session.Token); ok {
		fmt.Fprintf(a.out, "Token valid until %s\n", exp.Local().Format(time.RFC1123))
	}
	fmt.Fprintf(a.out, "API %s\n", a.client.BaseURL())
	return nil
}

func (a *app) trades(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trades", flag.ContinueOnError)
	var status string
	var page int
	fs.StringVar(&status, "status", "", "")
	fs.StringVar(&status, "s", "", "")
	fs.IntVar(&page, "page", 1, "")
	fs.IntVar(&page, "p", 1, "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	params := trade.ListParams{Page: max(page-1, 0), OrderBy: trade.OrderDesc}
	if status != "" {
		s, err := trade.ParseStatus(strings.ToUpper(status))
		if err != nil {
			return err
		}
		params.Status = s
	}

	trades, _ := a.services()
	items, err := trades.List(ctx, a.session.TrainerID, params)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No trades.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRADE\tSTATUS\tDIRECTION\tTRAINER")
	for _, it := range items {
		direction, other := "sent", it.Receiver.ID
		if it.Receiver.ID == a.session.TrainerID {
			direction, other = "received", it.Sender.ID
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t#%d\n", it.ID, it.Status, direction, other)
	}
	return w.Flush()
}

func (a *app) trade(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: poketrade trade <id>")
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid trade id %q", args[0])
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	trades, _ := a.services()
	h, err := trades.Load(ctx, trade.ID(n))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Trade #%d  %s\n", h.Trade.ID, h.Trade.Status)
	fmt.Fprintf(a.out, "\nSender: %s\n", h.SenderName())
	printResolved(a.out, h.SenderCreatures)
	fmt.Fprintf(a.out, "\nReceiver: %s\n", h.ReceiverName())
	printResolved(a.out, h.ReceiverCreatures)
	return nil
}

func printResolved(w io.Writer, resolved []creature.Resolved) {
	if len(resolved) == 0 {
		fmt.Fprintln(w, "  (nothing)")
		return
	}
	for _, r := range resolved {
		fmt.Fprintf(w, "  %s\n", panels.FormatResolved(r))
	}
}
