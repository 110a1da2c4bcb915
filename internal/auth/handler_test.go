// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T, users *stubUsers) http.Handler {
	t.Helper()
	cfg := testSessionConfig("a-very-long-secret-for-testing-purposes")
	manager, err := NewSessionManager(cfg)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	sessions := NewSessions(manager, NewCookieJar(cfg))
	h := NewHandler(NewService(users, testHasher(t), ""), sessions)

	r := chi.NewRouter()
	h.RegisterRoutes(r, func(next http.Handler) http.Handler { return next })
	return r
}

func registerEve(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"eve@example.com","password":"pw","name":"Eve"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}
	return cookie
}

func me(t *testing.T, router http.Handler, cookie *http.Cookie) (*UserResponse, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}

	var body struct {
		User *UserResponse `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.User, rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestHandler_RegisterSetsCookieAndMeReadsIt(t *testing.T) {
	router := newTestRouter(t, newStubUsers())

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"eve@example.com","password":"pw","name":"Eve"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected session cookie")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie must be HttpOnly and SameSite=Lax: %+v", cookie)
	}

	meReq := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	meReq.AddCookie(cookie)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, meReq)

	var body struct {
		User *UserResponse `json:"user"`
	}
	if err := json.Unmarshal(meRec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User == nil || body.User.Email != "eve@example.com" || body.User.Role != "user" {
		t.Fatalf("unexpected me payload: %s", meRec.Body.String())
	}
}

func TestHandler_MeWithoutSessionIsNull(t *testing.T) {
	router := newTestRouter(t, newStubUsers())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"user":null}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_RegisterDuplicate(t *testing.T) {
	router := newTestRouter(t, newStubUsers())
	body := `{"email":"dup@example.com","password":"pw"}`

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	if first.Code != http.StatusOK {
		t.Fatalf("first register: %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"DUP@example.com","password":"pw"}`)))
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", second.Code)
	}
	if !strings.Contains(second.Body.String(), `"field":"email"`) {
		t.Fatalf("expected email field hint: %s", second.Body.String())
	}
}

func TestHandler_LoginWrongPassword(t *testing.T) {
	router := newTestRouter(t, newStubUsers())

	reg := httptest.NewRecorder()
	router.ServeHTTP(reg, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"fay@example.com","password":"right"}`)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"fay@example.com","password":"wrong"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestHandler_LogoutClearsCookie(t *testing.T) {
	router := newTestRouter(t, newStubUsers())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("expected expiring empty cookie, got %+v", cookie)
	}
}

func TestHandler_MeForDeletedAccountIsNull(t *testing.T) {
	users := newStubUsers()
	router := newTestRouter(t, users)
	cookie := registerEve(t, router)

	users.byEmail["eve@example.com"].IsDeleted = true

	user, rec := me(t, router, cookie)
	if user != nil {
		t.Fatalf("deleted account must read as signed out: %s", rec.Body.String())
	}
	cleared := sessionCookie(rec)
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("expected the session cookie to be cleared, got %+v", cleared)
	}
}

func TestHandler_MeForMissingAccountIsNull(t *testing.T) {
	users := newStubUsers()
	router := newTestRouter(t, users)
	cookie := registerEve(t, router)

	delete(users.byEmail, "eve@example.com")

	if user, rec := me(t, router, cookie); user != nil {
		t.Fatalf("missing account must read as signed out: %s", rec.Body.String())
	}
}

func TestHandler_MeReflectsLiveRole(t *testing.T) {
	users := newStubUsers()
	router := newTestRouter(t, users)
	cookie := registerEve(t, router)

	users.byEmail["eve@example.com"].Role = "admin"

	user, _ := me(t, router, cookie)
	if user == nil || user.Role != "admin" {
		t.Fatalf("expected live role admin, got %+v", user)
	}
}

func TestHandler_MeFallsBackToClaimsOnLookupFailure(t *testing.T) {
	users := newStubUsers()
	router := newTestRouter(t, users)
	cookie := registerEve(t, router)

	users.loadFail = errors.New("connection refused")

	user, rec := me(t, router, cookie)
	if user == nil || user.Email != "eve@example.com" {
		t.Fatalf("expected claims fallback, got %s", rec.Body.String())
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("a lookup failure must not end the session")
	}
}
