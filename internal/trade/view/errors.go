package view

import "errors"

// User-visible texts produced locally. Remote failures are shown through
// api.Message instead.
const (
	MsgReceiverNotInURL = "Receiver ID not found in URL"
	MsgEmptyTrade       = "You must offer at least one Pokémon or request at least one Pokémon"
	MsgMissingParties   = "Missing sender or receiver ID"
	MsgTrainerNotFound  = "Trainer ID not found"
	MsgAlreadySelected  = "This Pokémon is already selected"
	MsgNothingToChoose  = "No Pokémon left to choose"
)

var (
	ErrEmptyTrade      = errors.New(MsgEmptyTrade)
	ErrMissingParties  = errors.New(MsgMissingParties)
	ErrNoTrainer       = errors.New(MsgTrainerNotFound)
	ErrAlreadySelected = errors.New(MsgAlreadySelected)
	ErrNothingToChoose = errors.New(MsgNothingToChoose)

	ErrBusy       = errors.New("request already in flight")
	ErrNotReady   = errors.New("view is not ready")
	ErrNotAllowed = errors.New("action not available to this trainer")
	ErrNoPending  = errors.New("no decision awaiting confirmation")
)
