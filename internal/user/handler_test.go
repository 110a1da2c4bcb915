// AngelaMos | 2026
// handler_test.go

package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/traffic-registry/internal/auth"
	"github.com/carterperez-dev/traffic-registry/internal/core"
	"github.com/carterperez-dev/traffic-registry/internal/middleware"
)

type stubSessions struct {
	started []*auth.UserInfo
}

func (s *stubSessions) Start(_ http.ResponseWriter, user *auth.UserInfo) error {
	s.started = append(s.started, user)
	return nil
}

func actAs(actor *core.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithActor(r.Context(), actor)))
		})
	}
}

func newTestRouter(repo *stubRepo, sessions *stubSessions, actor *core.Actor) http.Handler {
	h := NewHandler(NewService(repo, &stubAvatars{}), sessions)
	r := chi.NewRouter()
	h.RegisterRoutes(r, actAs(actor), middleware.RequireAdmin)
	return r
}

func TestHandler_DeleteSelfReturns400(t *testing.T) {
	repo := seededRepo()
	router := newTestRouter(repo, &stubSessions{}, adminActor())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/1", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), core.CodeInvalidOperation) {
		t.Fatalf("expected INVALID_OPERATION, got %s", rec.Body.String())
	}
	if repo.users[1].IsDeleted {
		t.Fatalf("row must not change")
	}
}

func TestHandler_DeleteAndRestore(t *testing.T) {
	repo := seededRepo()
	router := newTestRouter(repo, &stubSessions{}, adminActor())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if !repo.users[2].IsDeleted {
		t.Fatalf("expected soft delete")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/users/2/restore", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("restore: expected 200, got %d", rec.Code)
	}
	if repo.users[2].IsDeleted {
		t.Fatalf("expected restore")
	}
}

func TestHandler_AdminRoutesRejectUsers(t *testing.T) {
	repo := seededRepo()
	router := newTestRouter(repo, &stubSessions{}, &core.Actor{ID: 2, Role: core.RoleUser})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodDelete, "/users/1"},
		{http.MethodPatch, "/users/1/restore"},
		{http.MethodPut, "/users/1"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`)))
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected 403, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestHandler_UpdateUserDuplicateEmail(t *testing.T) {
	router := newTestRouter(seededRepo(), &stubSessions{}, adminActor())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/2",
		strings.NewReader(`{"email":"admin@example.com"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body core.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != core.CodeDuplicateKey || body.Field != "email" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestHandler_UpdateUserBadID(t *testing.T) {
	router := newTestRouter(seededRepo(), &stubSessions{}, adminActor())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/abc", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_UpdateProfileReissuesSession(t *testing.T) {
	repo := seededRepo()
	sessions := &stubSessions{}
	router := newTestRouter(repo, sessions, &core.Actor{ID: 2, Role: core.RoleUser})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/profile",
		strings.NewReader(`{"name":"Alice New","address":"Main st 1"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(sessions.started) != 1 || *sessions.started[0].Name != "Alice New" {
		t.Fatalf("expected session re-issued with new name, got %+v", sessions.started)
	}

	var body ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User.Address == nil || *body.User.Address != "Main st 1" {
		t.Fatalf("unexpected profile: %+v", body.User)
	}
}

func TestHandler_ListUsers(t *testing.T) {
	router := newTestRouter(seededRepo(), &stubSessions{}, adminActor())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password hash must never be serialized")
	}
}
