// AngelaMos | 2026
// dto.go

package vehicle

import (
	"strings"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

// VehicleRequest accepts year and ownerId as numbers or numeric strings,
// the way HTML forms submit them.
type VehicleRequest struct {
	LicensePlate string `json:"licensePlate" validate:"required,max=32"`
	Brand        string `json:"brand"        validate:"required,max=64"`
	Model        string `json:"model"        validate:"required,max=64"`
	Year         any    `json:"year"`
	OwnerID      any    `json:"ownerId"`
}

func (r *VehicleRequest) Normalize() {
	r.LicensePlate = strings.TrimSpace(r.LicensePlate)
	r.Brand = strings.TrimSpace(r.Brand)
	r.Model = strings.TrimSpace(r.Model)
}

func (r VehicleRequest) ToVehicle() (*Vehicle, error) {
	v := &Vehicle{
		LicensePlate: r.LicensePlate,
		Brand:        r.Brand,
		Model:        r.Model,
	}

	year, present, ok := core.LooseInt64(r.Year)
	if !ok {
		return nil, core.WithField(core.Reason(core.ErrInvalidInput, "year must be a number"), "year")
	}
	if present {
		v.Year = &year
	}

	owner, present, ok := core.LooseInt64(r.OwnerID)
	if !ok {
		return nil, core.WithField(core.Reason(core.ErrInvalidInput, "ownerId must be a number"), "ownerId")
	}
	if present {
		v.OwnerID = &owner
	}

	return v, nil
}

type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
