// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateProfileRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=32"`
	Avatar  *string `json:"avatar"`
}

// AdminUpdateRequest leaves a field unchanged when it is omitted.
type AdminUpdateRequest struct {
	Email   *string `json:"email"   validate:"omitempty,email,max=255"`
	Name    *string `json:"name"    validate:"omitempty,max=100"`
	Role    *string `json:"role"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=32"`
}

type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      *string    `json:"name"`
	Avatar    *string    `json:"avatar"`
	Address   *string    `json:"address"`
	Phone     *string    `json:"phone"`
	Role      string     `json:"role"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Address:   u.Address,
		Phone:     u.Phone,
		Role:      u.Role,
		IsDeleted: u.IsDeleted,
		DeletedAt: u.DeletedAt,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
