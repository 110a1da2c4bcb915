// AngelaMos | 2026
// params.go

package core

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// URLParamID parses a positive integer id from the named chi route param.
func URLParamID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, WithField(Reason(ErrInvalidInput, "invalid id"), name)
	}
	return id, nil
}
