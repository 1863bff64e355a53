// Package league credits completed games to players and ranks them.
package league

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/platleague/internal/model"
	"github.com/sells-group/platleague/internal/store"
)

var (
	// ErrInvalidInput reports a missing or malformed add-game field.
	ErrInvalidInput = eris.New("league: invalid input")
	// ErrTooShort reports a game below the minimum credited length.
	ErrTooShort = eris.New("league: game shorter than minimum")
)

// DefaultRoster seeds an empty league.
var DefaultRoster = []string{"Cebola", "Brau", "Jack", "Vyc"}

// AddGameRequest is the payload for crediting a game.
type AddGameRequest struct {
	PlayerID string  `json:"player_id"`
	GameName string  `json:"game_name"`
	Hours    float64 `json:"hours"`
	HLTBLink string  `json:"hltb_link"`
	ImageURL string  `json:"image_url"`
}

// Service implements league operations over a Store.
type Service struct {
	store    store.Store
	sanitize *bluemonday.Policy
	now      func() time.Time
}

// New creates a Service.
func New(st store.Store) *Service {
	return &Service{
		store:    st,
		sanitize: bluemonday.StrictPolicy(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Players lists every player.
func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	return players, eris.Wrap(err, "league: players")
}

// Games lists the credited game history, newest first.
func (s *Service) Games(ctx context.Context) ([]model.GameRecord, error) {
	games, err := s.store.ListGames(ctx)
	return games, eris.Wrap(err, "league: games")
}

// Leaderboard totals points per player, highest first. Ties keep roster
// order. Games credited to unknown players are ignored.
func (s *Service) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var (
		players []model.Player
		games   []model.GameRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.store.ListPlayers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		games, err = s.store.ListGames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "league: leaderboard")
	}

	board := make([]model.LeaderboardEntry, len(players))
	index := make(map[string]int, len(players))
	for i, p := range players {
		board[i] = model.LeaderboardEntry{ID: p.ID, Name: p.Name}
		index[p.ID] = i
	}
	for _, game := range games {
		i, ok := index[game.PlayerID]
		if !ok {
			continue
		}
		board[i].TotalPoints += game.Points
		board[i].Games++
	}

	sort.SliceStable(board, func(a, b int) bool {
		return board[a].TotalPoints > board[b].TotalPoints
	})
	return board, nil
}

// AddGame validates req, scores it and stores the record.
func (s *Service) AddGame(ctx context.Context, req AddGameRequest) (*model.GameRecord, error) {
	rec, err := s.Score(req)
	if err != nil {
		return nil, err
	}

	id, err := s.store.AddGame(ctx, *rec)
	if err != nil {
		return nil, eris.Wrap(err, "league: add game")
	}
	rec.ID = id

	zap.L().Info("league: game credited",
		zap.String("player_id", rec.PlayerID),
		zap.String("game", rec.GameName),
		zap.Float64("hours", rec.Hours),
		zap.Int("points", rec.Points),
	)
	return rec, nil
}

// Score validates req and builds the record it would store, without
// persisting it.
func (s *Service) Score(req AddGameRequest) (*model.GameRecord, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	name := strings.TrimSpace(s.sanitize.Sanitize(req.GameName))
	if playerID == "" || name == "" {
		return nil, eris.Wrap(ErrInvalidInput, "player_id, game_name and hours are required")
	}
	if err := model.ValidateHours(req.Hours); err != nil {
		return nil, eris.Wrap(ErrInvalidInput, err.Error())
	}
	if req.Hours == 0 {
		return nil, eris.Wrap(ErrInvalidInput, "player_id, game_name and hours are required")
	}

	points, tier := model.Classify(req.Hours)
	if tier == model.TierInvalid {
		return nil, eris.Wrapf(ErrTooShort, "games under %g hours do not count", model.MinValidHours)
	}

	link := strings.TrimSpace(req.HLTBLink)
	if link == "" {
		link = model.DefaultHLTBLink
	}
	image := strings.TrimSpace(req.ImageURL)
	if image == "" {
		image = model.PlaceholderImage
	}

	return &model.GameRecord{
		PlayerID:  playerID,
		GameName:  name,
		HLTBLink:  link,
		ImageURL:  image,
		Hours:     req.Hours,
		Points:    points,
		Category:  tier.Label(),
		CreatedAt: s.now(),
	}, nil
}

// SeedIfEmpty adds roster when the league has no players. It reports how
// many players were added.
func (s *Service) SeedIfEmpty(ctx context.Context, roster []string) (int, error) {
	n, err := s.store.CountPlayers(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "league: seed")
	}
	if n > 0 {
		return 0, nil
	}
	return s.seed(ctx, roster)
}

// ResetAndSeed deletes every game and player, then adds roster.
func (s *Service) ResetAndSeed(ctx context.Context, roster []string) (int, error) {
	if err := s.store.Reset(ctx); err != nil {
		return 0, eris.Wrap(err, "league: reset")
	}
	zap.L().Warn("league: all games and players deleted")
	return s.seed(ctx, roster)
}

func (s *Service) seed(ctx context.Context, roster []string) (int, error) {
	if len(roster) == 0 {
		roster = DefaultRoster
	}
	added := 0
	for _, name := range roster {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := s.store.AddPlayer(ctx, name); err != nil {
			return added, eris.Wrapf(err, "league: seed player %s", name)
		}
		added++
	}
	zap.L().Info("league: roster seeded", zap.Int("players", added))
	return added, nil
}
