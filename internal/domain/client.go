package domain

import (
	"github.com/kiryu-dev/checkers/internal/checkers"
)

const (
	ClientUuidHeader = "X-Client-Key"
)

type messageType byte

const (
	SignIn = messageType(iota)
	SignOut
	ListPlayers
	StartGame
	OpenGame
	ViewGame
	ValidateMove
	BackupMove
	SubmitTurn
	CheckTurn
	Resign
	StartAsync
	ConfirmAsync
	DenyAsync

	Reply
	GameViewReply
	PlayersReply
	ErrorReply
)

var messageTypeNames = [...]string{
	SignIn:        "SignIn",
	SignOut:       "SignOut",
	ListPlayers:   "ListPlayers",
	StartGame:     "StartGame",
	OpenGame:      "OpenGame",
	ViewGame:      "ViewGame",
	ValidateMove:  "ValidateMove",
	BackupMove:    "BackupMove",
	SubmitTurn:    "SubmitTurn",
	CheckTurn:     "CheckTurn",
	Resign:        "Resign",
	StartAsync:    "StartAsync",
	ConfirmAsync:  "ConfirmAsync",
	DenyAsync:     "DenyAsync",
	Reply:         "Reply",
	GameViewReply: "GameViewReply",
	PlayersReply:  "PlayersReply",
	ErrorReply:    "ErrorReply",
}

func (t messageType) String() string {
	if int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return "Unknown"
}

// Message is one frame of the /game command socket. Every request is
// answered with exactly one reply.
type Message struct {
	Type    messageType
	Payload any
}

type SignInPayload struct {
	Name string `json:"name"`
}

type StartGamePayload struct {
	Opponent string `json:"opponent"`
}

type OpenGamePayload struct {
	GameID int `json:"gameId"`
}

type MovePayload struct {
	Start checkers.Position `json:"start"`
	End   checkers.Position `json:"end"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}
