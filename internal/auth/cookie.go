// AngelaMos | 2026
// cookie.go

package auth

import (
	"net/http"
	"time"

	"github.com/carterperez-dev/traffic-registry/internal/config"
)

type CookieJar struct {
	name   string
	secure bool
	ttl    time.Duration
}

func NewCookieJar(cfg config.SessionConfig) *CookieJar {
	return &CookieJar{
		name:   cfg.CookieName,
		secure: cfg.CookieSecure,
		ttl:    cfg.TTL,
	}
}

func (j *CookieJar) Token(r *http.Request) string {
	c, err := r.Cookie(j.name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (j *CookieJar) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(j.ttl.Seconds()),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j *CookieJar) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Sessions issues a token for a user and delivers it as the session cookie.
type Sessions struct {
	manager *SessionManager
	cookies *CookieJar
}

func NewSessions(manager *SessionManager, cookies *CookieJar) *Sessions {
	return &Sessions{manager: manager, cookies: cookies}
}

func (s *Sessions) Start(w http.ResponseWriter, user *UserInfo) error {
	token, err := s.manager.Issue(user)
	if err != nil {
		return err
	}
	s.cookies.Set(w, token)
	return nil
}

func (s *Sessions) End(w http.ResponseWriter) {
	s.cookies.Clear(w)
}

func (s *Sessions) Claims(r *http.Request) (*UserInfo, bool) {
	token := s.cookies.Token(r)
	if token == "" {
		return nil, false
	}

	claims, err := s.manager.VerifySession(token)
	if err != nil {
		return nil, false
	}

	return &UserInfo{
		ID:      claims.UserID,
		Email:   claims.Email,
		Name:    optional(claims.Name),
		Avatar:  optional(claims.Avatar),
		Address: optional(claims.Address),
		Phone:   optional(claims.Phone),
		Role:    claims.Role,
	}, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
