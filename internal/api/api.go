// Package api serves the league over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/sells-group/platleague/internal/league"
	"github.com/sells-group/platleague/internal/model"
)

// Searcher resolves a free-text query into candidate games.
type Searcher interface {
	Resolve(ctx context.Context, query string) []model.ResolvedGame
}

// League is the subset of league.Service the API exposes.
type League interface {
	Players(ctx context.Context) ([]model.Player, error)
	Games(ctx context.Context) ([]model.GameRecord, error)
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	AddGame(ctx context.Context, req league.AddGameRequest) (*model.GameRecord, error)
}

// Config tunes the router.
type Config struct {
	// MaxConcurrentSearches bounds in-flight resolutions; each one drives a
	// browser.
	MaxConcurrentSearches int
	CORSOrigins           []string
}

// Server holds the handlers' dependencies.
type Server struct {
	cfg      Config
	league   League
	searcher Searcher
	searches *semaphore.Weighted
}

// New creates a Server.
func New(cfg Config, lg League, searcher Searcher) *Server {
	n := cfg.MaxConcurrentSearches
	if n < 1 {
		n = 1
	}
	return &Server{
		cfg:      cfg,
		league:   lg,
		searcher: searcher,
		searches: semaphore.NewWeighted(int64(n)),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/players", s.handlePlayers)
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/search-game", s.handleSearch)
	r.Get("/games", s.handleGames)
	r.Post("/add-game", s.handleAddGame)

	return r
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.league.Players(r.Context())
	if err != nil {
		serverError(w, r, "failed to list players", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.league.Leaderboard(r.Context())
	if err != nil {
		serverError(w, r, "failed to build leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.league.Games(r.Context())
	if err != nil {
		serverError(w, r, "failed to list games", err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	if err := s.searches.Acquire(r.Context(), 1); err != nil {
		writeError(w, http.StatusServiceUnavailable, "search canceled")
		return
	}
	defer s.searches.Release(1)

	writeJSON(w, http.StatusOK, s.searcher.Resolve(r.Context(), q))
}

type addGameResponse struct {
	Message string `json:"message"`
	GameID  string `json:"gameId"`
	model.GameRecord
}

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	var req league.AddGameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.league.AddGame(r.Context(), req)
	switch {
	case errors.Is(err, league.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "incomplete data: player_id, game_name and hours are required")
		return
	case errors.Is(err, league.ErrTooShort):
		writeError(w, http.StatusBadRequest, "games under 5 hours do not count")
		return
	case err != nil:
		serverError(w, r, "failed to add game", err)
		return
	}

	writeJSON(w, http.StatusOK, addGameResponse{
		Message:    "game added",
		GameID:     rec.ID,
		GameRecord: *rec,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("api: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zap.L().Error("api: "+msg,
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, msg)
}

// requestLogger logs each request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
