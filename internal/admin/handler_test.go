// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/carterperez-dev/traffic-registry/internal/core"
	"github.com/carterperez-dev/traffic-registry/internal/middleware"
)

type stubOverview struct {
	overview *Overview
	err      error
}

func (s stubOverview) Overview(context.Context) (*Overview, error) {
	return s.overview, s.err
}

func actAs(actor *core.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithActor(r.Context(), actor)))
		})
	}
}

var (
	adminActor = &core.Actor{ID: 1, Email: "admin@example.com", Role: core.RoleAdmin}
	userActor  = &core.Actor{ID: 2, Email: "alice@example.com", Role: core.RoleUser}
)

func serve(h *Handler, actor *core.Actor, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r, actAs(actor), middleware.RequireAdmin)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestOverview(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := now.Add(-90 * time.Minute)
	want := Overview{
		PendingViolations: 3,
		OldestPendingAt:   &oldest,
		ActiveUsers:       5,
		DeletedUsers:      1,
		Admins:            2,
	}

	h := NewHandler(HandlerConfig{Overview: stubOverview{overview: &want}})
	h.now = func() time.Time { return now }

	rec := serve(h, adminActor, "/admin/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var got OverviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if diff := cmp.Diff(want, got.Overview); diff != "" {
		t.Errorf("overview mismatch (-want +got):\n%s", diff)
	}
	if got.QueueAge != "1h30m0s" {
		t.Errorf("expected queue age 1h30m0s, got %q", got.QueueAge)
	}
}

func TestOverviewEmptyQueue(t *testing.T) {
	h := NewHandler(HandlerConfig{Overview: stubOverview{overview: &Overview{ActiveUsers: 1, Admins: 1}}})

	rec := serve(h, adminActor, "/admin/overview")

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := got["queue_age"]; ok {
		t.Errorf("queue age must be omitted with no pending violations: %v", got)
	}
	if got["oldest_pending_at"] != nil {
		t.Errorf("expected null oldest_pending_at, got %v", got["oldest_pending_at"])
	}
}

func TestOverviewStorageFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{Overview: stubOverview{err: errors.New("connection reset")}})

	rec := serve(h, adminActor, "/admin/overview")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body core.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != core.CodeStorageFailure {
		t.Errorf("expected %s, got %s", core.CodeStorageFailure, body.Code)
	}
}

func TestAdminRoutesRejectUsers(t *testing.T) {
	h := NewHandler(HandlerConfig{Overview: stubOverview{overview: &Overview{}}})

	for _, path := range []string{"/admin/overview", "/admin/stats", "/admin/stats/runtime"} {
		if rec := serve(h, userActor, path); rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", path, rec.Code)
		}
	}
}

func TestSystemStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBStats: func() sql.DBStats {
			return sql.DBStats{MaxOpenConnections: 25, OpenConnections: 3, InUse: 1, Idle: 2}
		},
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("down") },
	})

	rec := serve(h, adminActor, "/admin/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got SystemStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !got.Database.Healthy || got.Database.Stats == nil || got.Database.Stats.OpenConnections != 3 {
		t.Errorf("unexpected database status %+v", got.Database)
	}
	if got.Redis.Healthy || got.Redis.Stats != nil {
		t.Errorf("unexpected redis status %+v", got.Redis)
	}
	if got.Runtime.GoVersion == "" || got.Runtime.NumCPU == 0 {
		t.Errorf("runtime stats not populated: %+v", got.Runtime)
	}
}
