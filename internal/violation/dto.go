// AngelaMos | 2026
// dto.go

package violation

// CreateRequest and UpdateRequest take loosely typed values because the
// form posts ids and amounts as either numbers or strings.
type CreateRequest struct {
	DriverID      any `json:"driverId"`
	VehicleID     any `json:"vehicleId"`
	ViolationType any `json:"violationType"`
	FineAmount    any `json:"fineAmount"`
}

type UpdateRequest struct {
	DriverID      any `json:"driverId"`
	VehicleID     any `json:"vehicleId"`
	ViolationType any `json:"violationType"`
	FineAmount    any `json:"fineAmount"`
	Status        any `json:"status"`
}

type CreatedResponse struct {
	ID             int64  `json:"id"`
	ApprovalStatus string `json:"approval_status"`
	Message        string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ApprovedResponse struct {
	Message   string    `json:"message"`
	Violation Violation `json:"violation"`
}
