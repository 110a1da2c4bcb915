// AngelaMos | 2026
// invalidate.go

package middleware

import (
	"context"
	"net/http"
)

// InvalidateOnWrite calls invalidate after every successful mutating
// request, so read models derived from the registry do not go stale.
func InvalidateOnWrite(invalidate func(ctx context.Context)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return
			}

			if rec.status == 0 || rec.status < http.StatusBadRequest {
				invalidate(context.WithoutCancel(r.Context()))
			}
		})
	}
}
