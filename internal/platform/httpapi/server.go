// Package httpapi exposes the score database over a small read-only HTTP API.
// It runs alongside the SSH server so leaderboards can be checked without
// opening a terminal session.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmelnik/chromamerge/internal/registry"
	"github.com/dmelnik/chromamerge/internal/storage"
)

const defaultScoreLimit = 10

// Server serves score and stats endpoints backed by the SQLite store.
type Server struct {
	store  *storage.Store
	logger *log.Logger
	srv    *http.Server
}

// NewServer creates an HTTP API server listening on addr.
// The store may be nil, in which case score endpoints return 503.
func NewServer(addr string, store *storage.Store, logger *log.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/games", s.handleGames)
	r.Get("/api/scores/{gameID}", s.handleScores)

	return r
}

// requestLogger logs each request with method, path, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if s.logger != nil {
			s.logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		}
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// gameInfo is the JSON shape for a registered game variant.
type gameInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	GamesCount int     `json:"gamesCount"`
	HighScore  int     `json:"highScore"`
	AvgScore   float64 `json:"avgScore"`
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	var stats map[string]*storage.GameStats
	if s.store != nil {
		var err error
		stats, err = s.store.GetAllGamesStats()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "cannot load stats")
			return
		}
	}

	infos := make([]gameInfo, 0)
	for _, g := range registry.List() {
		info := gameInfo{ID: g.ID, Title: g.Title}
		if st, ok := stats[g.ID]; ok {
			info.GamesCount = st.GamesCount
			info.HighScore = st.HighScore
			info.AvgScore = st.AvgScore
		}
		infos = append(infos, info)
	}

	writeJSON(w, http.StatusOK, infos)
}

// scoreEntry is the JSON shape for a single leaderboard row.
type scoreEntry struct {
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage not available")
		return
	}

	gameID := chi.URLParam(r, "gameID")
	if !registry.Exists(gameID) {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}

	limit := defaultScoreLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	scores, err := s.store.TopScores(gameID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}

	entries := make([]scoreEntry, 0, len(scores))
	for _, e := range scores {
		entries = append(entries, scoreEntry{Score: e.Score, CreatedAt: e.CreatedAt})
	}

	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client gone, nothing to do
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Run starts the server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("starting HTTP API", "address", s.srv.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Handler returns the route tree, mostly useful for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
