// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

// Overview is the moderation picture an administrator needs at a glance.
type Overview struct {
	PendingViolations int        `db:"pending_violations" json:"pending_violations"`
	OldestPendingAt   *time.Time `db:"oldest_pending_at"  json:"oldest_pending_at"`
	ActiveUsers       int        `db:"active_users"       json:"active_users"`
	DeletedUsers      int        `db:"deleted_users"      json:"deleted_users"`
	Admins            int        `db:"admins"             json:"admins"`
}

type OverviewSource interface {
	Overview(ctx context.Context) (*Overview, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) OverviewSource {
	return &repository{db: db}
}

func (r *repository) Overview(ctx context.Context) (*Overview, error) {
	query := `
		SELECT
		    (SELECT COUNT(*) FROM violations WHERE approval_status = 'pending') AS pending_violations,
		    (SELECT MIN(violation_date) FROM violations WHERE approval_status = 'pending') AS oldest_pending_at,
		    (SELECT COUNT(*) FROM users WHERE is_deleted = FALSE) AS active_users,
		    (SELECT COUNT(*) FROM users WHERE is_deleted = TRUE) AS deleted_users,
		    (SELECT COUNT(*) FROM users WHERE is_deleted = FALSE AND role = 'admin') AS admins`

	var o Overview
	if err := r.db.GetContext(ctx, &o, query); err != nil {
		return nil, fmt.Errorf("registry overview: %w", err)
	}
	return &o, nil
}
