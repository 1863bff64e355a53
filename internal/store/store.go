// Package store persists league players and credited games.
package store

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/platleague/internal/db"
	"github.com/sells-group/platleague/internal/model"
)

// Store defines the persistence interface for the league.
type Store interface {
	// Players
	ListPlayers(ctx context.Context) ([]model.Player, error)
	AddPlayer(ctx context.Context, name string) (*model.Player, error)
	CountPlayers(ctx context.Context) (int, error)

	// Games, newest first.
	ListGames(ctx context.Context) ([]model.GameRecord, error)
	// AddGame stores rec and returns its id. An empty rec.ID is generated.
	AddGame(ctx context.Context, rec model.GameRecord) (string, error)

	// Reset deletes every game and player.
	Reset(ctx context.Context) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures a driver.
type Config struct {
	Driver      string        `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string        `yaml:"database_url" mapstructure:"database_url"`
	Pool        db.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// Open connects to the configured driver. The caller runs Migrate.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = "platleague.db"
		}
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "postgresql":
		if cfg.DatabaseURL == "" {
			return nil, eris.New("store: postgres requires database_url")
		}
		s, err := NewPostgres(ctx, cfg.DatabaseURL, cfg.Pool)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
