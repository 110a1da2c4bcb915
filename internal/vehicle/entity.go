// AngelaMos | 2026
// entity.go

package vehicle

import (
	"time"
)

type Vehicle struct {
	ID           int64     `db:"id"            json:"id"`
	LicensePlate string    `db:"license_plate" json:"license_plate"`
	Brand        string    `db:"brand"         json:"brand"`
	Model        string    `db:"model"         json:"model"`
	Year         *int64    `db:"year"          json:"year"`
	OwnerID      *int64    `db:"owner_id"      json:"owner_id"`
	CreatedDate  time.Time `db:"created_date"  json:"created_date"`
}

// ListedVehicle is a vehicle joined with its owner's name.
type ListedVehicle struct {
	Vehicle
	OwnerName *string `db:"owner_name" json:"owner_name"`
}
