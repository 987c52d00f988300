package view

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trainer"
)

type RouteKind uint8

const (
	RouteTradeDirectory RouteKind = iota
	RouteTradeDetail
	RouteTradeCreate
	RouteTrainerSearch
	RouteLogin
)

func (k RouteKind) String() string {
	switch k {
	case RouteTradeDirectory:
		return "trades"
	case RouteTradeDetail:
		return "trade"
	case RouteTradeCreate:
		return "new-trade"
	case RouteTrainerSearch:
		return "trainers"
	case RouteLogin:
		return "login"
	default:
		return "unknown"
	}
}

// Route is a navigation target. TradeID is set for RouteTradeDetail,
// ReceiverID (optionally) for RouteTradeCreate.
type Route struct {
	Kind       RouteKind
	TradeID    trade.ID
	ReceiverID *trainer.ID
}

func DirectoryRoute() Route { return Route{Kind: RouteTradeDirectory} }

func DetailRoute(id trade.ID) Route { return Route{Kind: RouteTradeDetail, TradeID: id} }

func ComposeRoute(receiver trainer.ID) Route {
	return Route{Kind: RouteTradeCreate, ReceiverID: &receiver}
}

// Path renders the route the way the web client addressed it.
func (r Route) Path() string {
	switch r.Kind {
	case RouteTradeDetail:
		return "/trades/" + r.TradeID.String()
	case RouteTradeCreate:
		if r.ReceiverID == nil {
			return "/trades/new"
		}
		return "/trades/new?receiverId=" + r.ReceiverID.String()
	case RouteTrainerSearch:
		return "/trainers"
	case RouteLogin:
		return "/login"
	default:
		return "/trades"
	}
}

func (r Route) String() string { return r.Path() }

// ParseRoute accepts the paths produced by Route.Path. A malformed receiverId
// is treated as absent so the composer reports it the same way.
func ParseRoute(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("parsing route %q: %w", raw, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "trades":
		return DirectoryRoute(), nil
	case len(parts) == 1 && parts[0] == "trainers":
		return Route{Kind: RouteTrainerSearch}, nil
	case len(parts) == 1 && parts[0] == "login":
		return Route{Kind: RouteLogin}, nil
	case len(parts) == 2 && parts[0] == "trades" && parts[1] == "new":
		r := Route{Kind: RouteTradeCreate}
		if id, err := strconv.ParseInt(u.Query().Get("receiverId"), 10, 64); err == nil && id > 0 {
			rid := trainer.ID(id)
			r.ReceiverID = &rid
		}
		return r, nil
	case len(parts) == 2 && parts[0] == "trades":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return Route{}, fmt.Errorf("invalid trade id %q", parts[1])
		}
		return DetailRoute(trade.ID(id)), nil
	}
	return Route{}, fmt.Errorf("unknown route %q", raw)
}
