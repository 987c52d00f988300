package panels

import (
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/internal/trainer"
)

// NavigateMsg asks the root model to switch screens.
type NavigateMsg struct {
	Route view.Route
}

// LoginSubmitMsg is sent when the login form is submitted.
type LoginSubmitMsg struct {
	Login    string
	Password string
}

// LogoutMsg asks the root model to drop the session.
type LogoutMsg struct{}

// SearchTrainersMsg is sent when a trainer search is submitted.
type SearchTrainersMsg struct {
	Params trainer.SearchParams
}

// ReloadDirectoryMsg asks for the current directory page to be fetched again.
type ReloadDirectoryMsg struct{}

// OpenPickerMsg asks the root model to load a pool for a composer slot.
type OpenPickerMsg struct {
	Request view.PickerRequest
}

// PickMsg is sent when a creature was chosen in the picker.
type PickMsg struct {
	Side trade.Side
	Slot int
	ID   creature.ID
}

// PickerClosedMsg is sent when the picker is dismissed without a choice.
type PickerClosedMsg struct{}

// SubmitTradeMsg carries a validated proposal to send.
type SubmitTradeMsg struct {
	Request trade.CreateRequest
}

// RespondMsg carries a confirmed decision to send.
type RespondMsg struct {
	Gen     uint64
	TradeID trade.ID
	Request trade.UpdateRequest
}

// ConfirmResultMsg is emitted by ConfirmPanel.
type ConfirmResultMsg struct {
	Confirmed bool
}
