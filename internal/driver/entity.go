// AngelaMos | 2026
// entity.go

package driver

import (
	"time"
)

type Driver struct {
	ID            int64     `db:"id"             json:"id"`
	FullName      string    `db:"full_name"      json:"full_name"`
	LicenseNumber string    `db:"license_number" json:"license_number"`
	Address       *string   `db:"address"        json:"address"`
	Phone         *string   `db:"phone"          json:"phone"`
	CreatedDate   time.Time `db:"created_date"   json:"created_date"`
}

const (
	SearchByName    = "name"
	SearchByLicense = "license"
)
