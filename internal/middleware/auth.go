// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

const ActorKey contextKey = "actor"

// SessionClaims is the self-contained payload of a session token. It is
// trusted for display only; mutations go through the live Actor.
type SessionClaims struct {
	UserID  int64
	Email   string
	Name    string
	Avatar  string
	Address string
	Phone   string
	Role    string
}

type TokenVerifier interface {
	VerifySession(token string) (*SessionClaims, error)
}

// ActorLoader resolves the live user behind a session. It returns
// core.ErrNotFound for a missing row and core.ErrAccountDisabled for a
// soft-deleted one.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID int64) (*core.Actor, error)
}

// CookieJar reads and clears the session cookie.
type CookieJar interface {
	Token(r *http.Request) string
	Clear(w http.ResponseWriter)
}

// Authenticator is the authorization gate for protected routes. It verifies
// the session token, re-reads the user row to catch deactivation and role
// changes, and attaches the resulting Actor to the request context.
func Authenticator(
	verifier TokenVerifier,
	loader ActorLoader,
	cookies CookieJar,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookies.Token(r)
			if token == "" {
				token = ExtractBearerToken(r)
			}

			if token == "" {
				core.JSONError(w, core.UnauthorizedError("authentication required"))
				return
			}

			claims, err := verifier.VerifySession(token)
			if err != nil {
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			actor, err := loader.LoadActor(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) ||
					errors.Is(err, core.ErrAccountDisabled) {
					cookies.Clear(w)
					core.JSONError(w, core.UnauthorizedError("account is not active"))
					return
				}
				slog.ErrorContext(r.Context(), "load actor",
					"user_id", claims.UserID,
					"error", err,
				)
				core.InternalServerError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := GetActor(r.Context())

			if actor == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[actor.Role]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("administrator access required"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(core.RoleAdmin)(next)
}

func ExtractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetActor(ctx context.Context) *core.Actor {
	if actor, ok := ctx.Value(ActorKey).(*core.Actor); ok {
		return actor
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if actor := GetActor(ctx); actor != nil {
		return actor.ID
	}
	return 0
}

// WithActor returns ctx carrying actor, as the gate would attach it.
func WithActor(ctx context.Context, actor *core.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}
