package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/platleague/internal/db"
	"github.com/sells-group/platleague/internal/model"
)

// PostgresStore implements Store using a pgx pool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg db.PoolConfig) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, connString, poolCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS players (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	player_id  TEXT NOT NULL,
	game_name  TEXT NOT NULL,
	hltb_link  TEXT NOT NULL,
	image_url  TEXT NOT NULL,
	hours      DOUBLE PRECISION NOT NULL,
	points     INTEGER NOT NULL,
	category   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_games_player_id ON games(player_id);
CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM players ORDER BY created_at, name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list players")
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan player")
		}
		players = append(players, p)
	}
	return players, eris.Wrap(rows.Err(), "postgres: iterate players")
}

func (s *PostgresStore) AddPlayer(ctx context.Context, name string) (*model.Player, error) {
	p := &model.Player{ID: uuid.New().String(), Name: name}
	_, err := s.pool.Exec(ctx, `INSERT INTO players (id, name) VALUES ($1, $2)`, p.ID, p.Name)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert player %s", name)
	}
	return p, nil
}

func (s *PostgresStore) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "postgres: count players")
	}
	return n, nil
}

func (s *PostgresStore) ListGames(ctx context.Context) ([]model.GameRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, player_id, game_name, hltb_link, image_url, hours, points, category, created_at
		 FROM games ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list games")
	}
	defer rows.Close()

	games := []model.GameRecord{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan game")
		}
		games = append(games, *g)
	}
	return games, eris.Wrap(rows.Err(), "postgres: iterate games")
}

func (s *PostgresStore) AddGame(ctx context.Context, rec model.GameRecord) (string, error) {
	rec = withIdentity(rec)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO games (id, player_id, game_name, hltb_link, image_url, hours, points, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.PlayerID, rec.GameName, rec.HLTBLink, rec.ImageURL,
		rec.Hours, rec.Points, rec.Category, rec.CreatedAt,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert game")
	}
	return rec.ID, nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: reset: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM games`); err != nil {
		return eris.Wrap(err, "postgres: reset games")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM players`); err != nil {
		return eris.Wrap(err, "postgres: reset players")
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: reset: commit")
}
