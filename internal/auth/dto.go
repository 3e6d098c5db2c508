// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Username string `json:"username" validate:"max=50"`
	Password string `json:"password" validate:"max=128"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
}
