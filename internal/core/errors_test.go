// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
		wantMsg    string
	}{
		{"not found", fmt.Errorf("get driver: %w", ErrNotFound), http.StatusNotFound, CodeNotFound, "", "driver not found"},
		{"duplicate with field", WithField(ErrDuplicateKey, "licenseNumber"), http.StatusBadRequest, CodeDuplicateKey, "licenseNumber", "licenseNumber already exists"},
		{"invalid reference", WithField(ErrInvalidReference, "ownerId"), http.StatusBadRequest, CodeInvalidReference, "ownerId", ""},
		{"validation reason", WithField(Reason(ErrInvalidInput, "year must be a number"), "year"), http.StatusBadRequest, CodeValidation, "year", "year must be a number"},
		{"forbidden reason", Reason(ErrForbidden, "only the author may edit"), http.StatusForbidden, CodeForbidden, "", "only the author may edit"},
		{"already approved", ErrAlreadyApproved, http.StatusBadRequest, CodeAlreadyApproved, "", ""},
		{"expired token", ErrTokenExpired, http.StatusUnauthorized, CodeInvalidToken, "", ""},
		{"unsupported format", ErrUnsupportedFormat, http.StatusBadRequest, CodeValidation, "format", ""},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError, CodeStorageFailure, "", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAppError(tt.err, "driver")

			if got.Status != tt.wantStatus || got.Code != tt.wantCode || got.Field != tt.wantField {
				t.Fatalf("got %d %s %q, want %d %s %q",
					got.Status, got.Code, got.Field, tt.wantStatus, tt.wantCode, tt.wantField)
			}
			if tt.wantMsg != "" && got.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, got.Message)
			}
		})
	}
}

func TestToAppErrorKeepsAppError(t *testing.T) {
	original := ForbiddenError("nope")
	if got := ToAppError(fmt.Errorf("wrapped: %w", original), "x"); got != original {
		t.Fatalf("expected the wrapped AppError back, got %+v", got)
	}
}

func TestClassifyError(t *testing.T) {
	fields := ConstraintFields{
		"drivers_license_number_key": "licenseNumber",
		"vehicles_owner_id_fkey":     "ownerId",
	}

	dup := ClassifyError(&pgconn.PgError{Code: "23505", ConstraintName: "drivers_license_number_key"}, fields)
	if !errors.Is(dup, ErrDuplicateKey) || FieldOf(dup) != "licenseNumber" {
		t.Errorf("unique violation not classified: %v (field %q)", dup, FieldOf(dup))
	}

	ref := ClassifyError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", ConstraintName: "vehicles_owner_id_fkey"}), fields)
	if !errors.Is(ref, ErrInvalidReference) || FieldOf(ref) != "ownerId" {
		t.Errorf("foreign key violation not classified: %v (field %q)", ref, FieldOf(ref))
	}

	other := &pgconn.PgError{Code: "42P01"}
	if got := ClassifyError(other, fields); got != error(other) {
		t.Errorf("unrelated pg error must pass through, got %v", got)
	}

	plain := errors.New("timeout")
	if got := ClassifyError(plain, fields); got != plain {
		t.Errorf("non-pg error must pass through, got %v", got)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"Иванов":  "Иванов",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}

	for in, want := range tests {
		if got := EscapeLike(in); got != want {
			t.Errorf("EscapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

type affected int64

func (a affected) LastInsertId() (int64, error) { return 0, nil }
func (a affected) RowsAffected() (int64, error) { return int64(a), nil }

func TestRequireAffected(t *testing.T) {
	if err := RequireAffected(affected(1)); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := RequireAffected(affected(0)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestURLParamID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var (
				got int64
				err error
			)
			r := chi.NewRouter()
			r.Get("/items/{id}", func(_ http.ResponseWriter, req *http.Request) {
				got, err = URLParamID(req, "id")
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+tt.raw, nil))

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) || FieldOf(err) != "id" {
					t.Fatalf("expected invalid id error, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %d, %v", got, err)
			}
		})
	}
}
