package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"teamup/internal/posts/models"
	"teamup/internal/posts/store/individual"
	"teamup/internal/posts/store/team"
	"teamup/internal/resolver"
)

func newResolveRouter(t *testing.T) (http.Handler, *individual.InMemory, *team.InMemory) {
	t.Helper()
	individuals := individual.NewInMemory()
	teams := team.NewInMemory()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(resolver.New(individuals, teams, nil), logger)
	r := chi.NewRouter()
	h.Register(r)
	return r, individuals, teams
}

func seedIndividual(t *testing.T, store *individual.InMemory, name, phone string, createdAt time.Time) {
	t.Helper()
	err := store.Insert(context.Background(), &models.IndividualPost{
		ID:        uuid.New(),
		Name:      name,
		Track:     models.TrackOS,
		Roles:     []string{"backend"},
		Phone:     phone,
		Status:    models.StatusOpen,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("failed to seed individual: %v", err)
	}
}

func resolve(t *testing.T, router http.Handler, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/posts/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResolveUniqueMatch(t *testing.T) {
	router, individuals, _ := newResolveRouter(t)
	seedIndividual(t, individuals, "Sara", "01012345678", time.Now())

	rec := resolve(t, router, map[string]string{"phone": "01012345678"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 resolving, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Outcome string `json:"outcome"`
		Posts   []struct {
			Kind string `json:"kind"`
		} `json:"posts"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode resolve response: %v", err)
	}
	if resp.Outcome != "unique" || len(resp.Posts) != 1 || resp.Posts[0].Kind != "individual" {
		t.Fatalf("unexpected resolution: %+v", resp)
	}
}

func TestResolveMissIs404(t *testing.T) {
	router, _, _ := newResolveRouter(t)

	rec := resolve(t, router, map[string]string{"phone": "01012345678"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unregistered phone, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error != "no_post_found" {
		t.Fatalf("expected no_post_found code, got %q", resp.Error)
	}
}

func TestResolveAmbiguousIs200WithCandidates(t *testing.T) {
	router, individuals, _ := newResolveRouter(t)
	seedIndividual(t, individuals, "first", "01012345678", time.Now())
	seedIndividual(t, individuals, "second", "01012345678", time.Now().Add(time.Second))

	rec := resolve(t, router, map[string]string{"phone": "01012345678"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ambiguous resolution, got %d", rec.Code)
	}

	var resp struct {
		Outcome string `json:"outcome"`
		Posts   []struct {
			Individual struct {
				Name string `json:"name"`
			} `json:"individual"`
		} `json:"posts"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode resolve response: %v", err)
	}
	if resp.Outcome != "ambiguous" || len(resp.Posts) != 2 {
		t.Fatalf("unexpected resolution: %+v", resp)
	}
	if resp.Posts[0].Individual.Name != "second" {
		t.Fatalf("expected newest candidate first, got %q", resp.Posts[0].Individual.Name)
	}
}

// The default comparison is byte-for-byte; an equivalent spelling misses
// unless the caller opts into normalized matching.
func TestResolveLiteralVersusNormalized(t *testing.T) {
	router, individuals, _ := newResolveRouter(t)
	seedIndividual(t, individuals, "Sara", "01012345678", time.Now())

	rec := resolve(t, router, map[string]string{"phone": "+201012345678"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for literal mismatch, got %d", rec.Code)
	}

	rec = resolve(t, router, map[string]string{"phone": "+201012345678", "match": "normalized"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for normalized match, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestResolveRejectsUnknownMatchMode(t *testing.T) {
	router, _, _ := newResolveRouter(t)

	rec := resolve(t, router, map[string]string{"phone": "01012345678", "match": "fuzzy"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown match mode, got %d", rec.Code)
	}
}

func TestResolveRequiresPhone(t *testing.T) {
	router, _, _ := newResolveRouter(t)

	rec := resolve(t, router, map[string]string{"phone": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty phone, got %d", rec.Code)
	}
}
