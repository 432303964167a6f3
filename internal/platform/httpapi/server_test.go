package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "github.com/dmelnik/chromamerge/internal/games/chroma"
	"github.com/dmelnik/chromamerge/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewServer(":0", store, nil), store
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestScoresEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	for _, score := range []int{100, 300, 200} {
		if _, err := store.SaveScore("chroma", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	rec := doRequest(t, srv, "/api/scores/chroma")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var entries []scoreEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Score != 300 {
		t.Errorf("Expected top score 300, got %d", entries[0].Score)
	}
}

func TestScoresEndpointLimit(t *testing.T) {
	srv, store := newTestServer(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveScore("chroma", (i+1)*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	rec := doRequest(t, srv, "/api/scores/chroma?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var entries []scoreEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
}

func TestScoresEndpointBadLimit(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/scores/chroma?limit=0",
		"/api/scores/chroma?limit=999",
		"/api/scores/chroma?limit=abc",
	} {
		rec := doRequest(t, srv, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", path, rec.Code)
		}
	}
}

func TestScoresEndpointUnknownGame(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "/api/scores/tetris")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestScoresEndpointNoStore(t *testing.T) {
	srv := NewServer(":0", nil, nil)

	rec := doRequest(t, srv, "/api/scores/chroma")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}
}

func TestGamesEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	if _, err := store.SaveScore("chroma", 250); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	rec := doRequest(t, srv, "/api/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var infos []gameInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}

	found := false
	for _, info := range infos {
		if info.ID == "chroma" {
			found = true
			if info.HighScore != 250 {
				t.Errorf("Expected high score 250, got %d", info.HighScore)
			}
		}
	}
	if !found {
		t.Error("Expected chroma in games list")
	}
}
