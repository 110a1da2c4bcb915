// AngelaMos | 2026
// session.go

package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/traffic-registry/internal/config"
	"github.com/carterperez-dev/traffic-registry/internal/core"
	"github.com/carterperez-dev/traffic-registry/internal/middleware"
)

const tokenTypeSession = "session"

// SessionManager is the session issuer: HS256 tokens signed with the server
// secret, carrying the profile fields the UI shows without a database read.
type SessionManager struct {
	key    jwk.Key
	config config.SessionConfig
	now    func() time.Time
}

func NewSessionManager(cfg config.SessionConfig) (*SessionManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is empty")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import session key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &SessionManager{
		key:    key,
		config: cfg,
		now:    time.Now,
	}, nil
}

func (m *SessionManager) TTL() time.Duration {
	return m.config.TTL
}

func (m *SessionManager) Issue(user *UserInfo) (string, error) {
	now := m.now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(strconv.FormatInt(user.ID, 10)).
		IssuedAt(now).
		Expiration(now.Add(m.config.TTL)).
		NotBefore(now).
		Claim("email", user.Email).
		Claim("name", deref(user.Name)).
		Claim("avatar", deref(user.Avatar)).
		Claim("address", deref(user.Address)).
		Claim("phone", deref(user.Phone)).
		Claim("role", user.Role).
		Claim("type", tokenTypeSession).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// VerifySession checks signature, issuer, audience and expiry. Every failure
// wraps core.ErrTokenInvalid or core.ErrTokenExpired.
func (m *SessionManager) VerifySession(
	tokenString string,
) (*middleware.SessionClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify session: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != tokenTypeSession {
		return nil, fmt.Errorf(
			"verify session: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify session: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf(
			"verify session: malformed subject: %w",
			core.ErrTokenInvalid,
		)
	}

	claims := &middleware.SessionClaims{UserID: userID}

	fields := []struct {
		name string
		dst  *string
	}{
		{"email", &claims.Email},
		{"name", &claims.Name},
		{"avatar", &claims.Avatar},
		{"address", &claims.Address},
		{"phone", &claims.Phone},
		{"role", &claims.Role},
	}
	for _, f := range fields {
		if err := token.Get(f.name, f.dst); err != nil {
			return nil, fmt.Errorf(
				"verify session: missing %s claim: %w",
				f.name,
				core.ErrTokenInvalid,
			)
		}
	}

	return claims, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
