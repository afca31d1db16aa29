package results

import (
	"context"
	"database/sql"

	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

type repository struct {
	db *sql.DB
}

// New opens the ledger at dsn and creates its table. ":memory:" keeps the
// ledger for the life of the process only.
func New(dsn string) (*repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WithMessage(err, "open db")
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)
	r := &repository{db: db}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, errors.WithMessage(err, "migrate")
	}
	return r, nil
}

func (r *repository) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			game_id      INTEGER NOT NULL,
			red_player   TEXT NOT NULL,
			white_player TEXT NOT NULL,
			winner       TEXT NOT NULL DEFAULT '',
			resigned     TEXT NOT NULL DEFAULT '',
			ended_at     DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS results_red ON results (red_player);
		CREATE INDEX IF NOT EXISTS results_white ON results (white_player);
	`)
	return err
}

func (r *repository) Close() error {
	return r.db.Close()
}

func (r *repository) Save(ctx context.Context, record domain.GameRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO results (game_id, red_player, white_player, winner, resigned, ended_at) VALUES (?, ?, ?, ?, ?, ?)",
		record.GameID, record.Red, record.White, record.Winner, record.Resigned, record.EndedAt.UTC(),
	)
	if err != nil {
		return errors.WithMessagef(err, "insert result of game %d", record.GameID)
	}
	return nil
}

// Standings counts wins and losses of every player with a decided game,
// best record first.
func (r *repository) Standings(ctx context.Context) ([]domain.Standing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player, SUM(won), SUM(1 - won) FROM (
			SELECT red_player AS player, winner = red_player AS won FROM results WHERE winner != ''
			UNION ALL
			SELECT white_player, winner = white_player FROM results WHERE winner != ''
		)
		GROUP BY player
		ORDER BY SUM(won) DESC, SUM(1 - won) ASC, player ASC
	`)
	if err != nil {
		return nil, errors.WithMessage(err, "query standings")
	}
	defer rows.Close()
	var standings []domain.Standing
	for rows.Next() {
		var s domain.Standing
		if err := rows.Scan(&s.Player, &s.Wins, &s.Losses); err != nil {
			return nil, errors.WithMessage(err, "scan standing")
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *repository) History(ctx context.Context, player string) ([]domain.GameRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT game_id, red_player, white_player, winner, resigned, ended_at
		FROM results
		WHERE red_player = ? OR white_player = ?
		ORDER BY ended_at DESC, game_id DESC
	`, player, player)
	if err != nil {
		return nil, errors.WithMessage(err, "query history")
	}
	defer rows.Close()
	var history []domain.GameRecord
	for rows.Next() {
		var record domain.GameRecord
		if err := rows.Scan(&record.GameID, &record.Red, &record.White, &record.Winner,
			&record.Resigned, &record.EndedAt); err != nil {
			return nil, errors.WithMessage(err, "scan result")
		}
		history = append(history, record)
	}
	return history, rows.Err()
}
