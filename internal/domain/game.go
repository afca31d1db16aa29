package domain

import (
	"context"
	"time"

	"github.com/kiryu-dev/checkers/internal/checkers"
)

type NoticeType string

const (
	NoticeInfo  = NoticeType("info")
	NoticeError = NoticeType("error")
)

// Notice is the short text shown to a player after an action.
type Notice struct {
	Text string     `json:"text"`
	Type NoticeType `json:"type"`
}

func InfoNotice(text string) Notice {
	return Notice{Text: text, Type: NoticeInfo}
}

func ErrorNotice(text string) Notice {
	return Notice{Text: text, Type: NoticeError}
}

type GameView struct {
	GameID       int                `json:"gameId"`
	Red          string             `json:"redPlayer"`
	White        string             `json:"whitePlayer"`
	Viewer       string             `json:"currentPlayer"`
	ActiveColor  checkers.Color     `json:"activeColor"`
	Board        checkers.BoardView `json:"board"`
	State        checkers.State     `json:"state"`
	Winner       string             `json:"winnerName,omitempty"`
	Message      *Notice            `json:"message,omitempty"`
	AsyncRequest bool               `json:"asyncRequest"`
	AsyncMode    bool               `json:"async"`
}

type GameSummary struct {
	GameID   int    `json:"gameId"`
	Opponent string `json:"opponent"`
}

// HomeView is what a signed-in player sees while no game is open.
type HomeView struct {
	Player  string        `json:"currentPlayer"`
	Players []string      `json:"signedInPlayers"`
	Games   []GameSummary `json:"currentGames"`
}

// Membership lists the games a player takes part in. GameIDs and Opponents
// are index-aligned; Cursor is -1 on the home view.
type Membership struct {
	Cursor    int
	GameIDs   []int
	Opponents []string
}

type GameRecord struct {
	GameID   int       `json:"gameId"`
	Red      string    `json:"redPlayer"`
	White    string    `json:"whitePlayer"`
	Winner   string    `json:"winner,omitempty"`
	Resigned string    `json:"resigned,omitempty"`
	EndedAt  time.Time `json:"endedAt"`
}

type Standing struct {
	Player string `json:"player"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type HealthResponse struct {
	Ready    bool  `json:"ready"`
	Games    int64 `json:"gamesStarted"`
	Archived int64 `json:"gamesArchived"`
}

type RegistryUseCase interface {
	StartGame(red, white string) *checkers.Game
	StartGameWith(red, white string, factory checkers.Factory) *checkers.Game
	CurrentGame(player string) (*checkers.Game, bool)
	ChangeGame(player string, id int)
	AllGames(player string) []*checkers.Game
	Game(id int) (*checkers.Game, bool)
	EndGame(game *checkers.Game, viewer string)
	ResignFromGame(game *checkers.Game, player string)
	Opponent(player string) (string, bool)
	Membership(player string) Membership
	RemoveCurrentGame(player string, id int)
	Records() <-chan GameRecord
	Started() int64
	Run(ctx context.Context) error
}

type LobbyUseCase interface {
	SignIn(ctx context.Context, name, session string) error
	SignOut(ctx context.Context, session string) error
	PlayerBySession(ctx context.Context, session string) (string, error)
	IsSignedIn(ctx context.Context, player string) (bool, error)
	SignedInPlayers(ctx context.Context, viewer string) ([]string, error)
	Home(ctx context.Context, session string) (HomeView, error)
}

type GameUseCase interface {
	StartGame(ctx context.Context, session, opponent string) (GameView, error)
	OpenGame(ctx context.Context, session string, id int) (*GameView, error)
	View(ctx context.Context, session string) (GameView, error)
	ValidateMove(ctx context.Context, session string, move MovePayload) (Notice, error)
	BackupMove(ctx context.Context, session string) (Notice, error)
	SubmitTurn(ctx context.Context, session string) (Notice, error)
	CheckTurn(ctx context.Context, session string) (Notice, error)
	Resign(ctx context.Context, session string) (Notice, error)
}

type AsyncUseCase interface {
	StartAsync(ctx context.Context, session string) error
	ConfirmAsync(ctx context.Context, session string) error
	DenyAsync(ctx context.Context, session string) error
	WaitingForResponses(player string) map[string]checkers.State
	FinishAsyncRequest(player string)
	CheckResponses(player string) (Notice, bool)
}

type ArchiveUseCase interface {
	Run(ctx context.Context) error
	Standings(ctx context.Context) ([]Standing, error)
	History(ctx context.Context, player string) ([]GameRecord, error)
	Archived() int64
}

type BoardRenderer interface {
	Render(board checkers.BoardView) ([]byte, error)
}
