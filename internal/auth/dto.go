// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
	Name     string `json:"name"     validate:"omitempty,max=100"`
}

type UserResponse struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Name    *string `json:"name"`
	Avatar  *string `json:"avatar"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Role    string  `json:"role"`
}

type AuthResponse struct {
	User *UserResponse `json:"user"`
}

type LogoutResponse struct {
	OK bool `json:"ok"`
}

func ToUserResponse(u *UserInfo) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Avatar:  u.Avatar,
		Address: u.Address,
		Phone:   u.Phone,
		Role:    u.Role,
	}
}
