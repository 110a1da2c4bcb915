// AngelaMos | 2026
// dto.go

package driver

import (
	"strings"
)

type DriverRequest struct {
	FullName      string  `json:"fullName"      validate:"required,max=255"`
	LicenseNumber string  `json:"licenseNumber" validate:"required,max=64"`
	Address       *string `json:"address"       validate:"omitempty,max=255"`
	Phone         *string `json:"phone"         validate:"omitempty,max=32"`
}

func (r *DriverRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.LicenseNumber = strings.TrimSpace(r.LicenseNumber)
}

func (r DriverRequest) ToDriver() *Driver {
	return &Driver{
		FullName:      r.FullName,
		LicenseNumber: r.LicenseNumber,
		Address:       blankToNil(r.Address),
		Phone:         blankToNil(r.Phone),
	}
}

type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
