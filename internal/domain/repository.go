package domain

import (
	"context"
)

// PresenceRepository binds players to sessions. A player that signed out
// stays known with no session.
type PresenceRepository interface {
	Bind(ctx context.Context, player, session string) error
	Release(ctx context.Context, player string) error
	// Session returns the player's current session, "" when signed out.
	Session(ctx context.Context, player string) (session string, known bool, err error)
	// PlayerBySession returns ErrNotSignedIn for an unbound session.
	PlayerBySession(ctx context.Context, session string) (string, error)
	SignedIn(ctx context.Context) ([]string, error)
}

type ResultRepository interface {
	Save(ctx context.Context, record GameRecord) error
	Standings(ctx context.Context) ([]Standing, error)
	History(ctx context.Context, player string) ([]GameRecord, error)
}
