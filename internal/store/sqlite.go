package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/platleague/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS players (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL,
	game_name  TEXT NOT NULL,
	hltb_link  TEXT NOT NULL,
	image_url  TEXT NOT NULL,
	hours      REAL NOT NULL,
	points     INTEGER NOT NULL,
	category   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_games_player_id ON games(player_id);
CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM players ORDER BY created_at, name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list players")
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan player")
		}
		players = append(players, p)
	}
	return players, eris.Wrap(rows.Err(), "sqlite: iterate players")
}

func (s *SQLiteStore) AddPlayer(ctx context.Context, name string) (*model.Player, error) {
	p := &model.Player{ID: uuid.New().String(), Name: name}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, time.Now().UTC(),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert player %s", name)
	}
	return p, nil
}

func (s *SQLiteStore) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "sqlite: count players")
	}
	return n, nil
}

func (s *SQLiteStore) ListGames(ctx context.Context) ([]model.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_id, game_name, hltb_link, image_url, hours, points, category, created_at
		 FROM games ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list games")
	}
	defer rows.Close()

	games := []model.GameRecord{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan game")
		}
		games = append(games, *g)
	}
	return games, eris.Wrap(rows.Err(), "sqlite: iterate games")
}

func (s *SQLiteStore) AddGame(ctx context.Context, rec model.GameRecord) (string, error) {
	rec = withIdentity(rec)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, player_id, game_name, hltb_link, image_url, hours, points, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PlayerID, rec.GameName, rec.HLTBLink, rec.ImageURL,
		rec.Hours, rec.Points, rec.Category, rec.CreatedAt,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert game")
	}
	return rec.ID, nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: reset: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"games", "players"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return eris.Wrapf(err, "sqlite: reset %s", table)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: reset: commit")
}

// withIdentity fills a generated id and creation time.
func withIdentity(rec model.GameRecord) model.GameRecord {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec
}

type scannable interface {
	Scan(dest ...any) error
}

func scanGame(row scannable) (*model.GameRecord, error) {
	var g model.GameRecord
	err := row.Scan(&g.ID, &g.PlayerID, &g.GameName, &g.HLTBLink, &g.ImageURL,
		&g.Hours, &g.Points, &g.Category, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
