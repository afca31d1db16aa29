package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrEmptyMessage     = errors.New("empty message")

	ErrNotSignedIn   = errors.New("not signed in")
	ErrInvalidName   = errors.New("invalid player name")
	ErrNameInUse     = errors.New("player name is already in use")
	ErrSessionInUse  = errors.New("session is already signed in")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrSelfPlay      = errors.New("cannot start a game against yourself")
	ErrPlayerBusy    = errors.New("already playing this opponent")
	ErrNoCurrentGame = errors.New("no current game")
	ErrUnknownGame   = errors.New("unknown game")
)
