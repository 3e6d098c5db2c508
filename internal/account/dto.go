// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=1,max=128"`
	Name     string `json:"name"     validate:"max=100"`
	Surname  string `json:"surname"  validate:"max=100"`
	Document string `json:"document" validate:"max=20"`
	Role     string `json:"role"     validate:"required,oneof=admin regular"`
}

// UpdateAccountRequest carries the full account. An empty password keeps
// the stored one.
type UpdateAccountRequest struct {
	ID       int64  `json:"id"       validate:"required,gt=0"`
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"max=128"`
	Name     string `json:"name"     validate:"max=100"`
	Surname  string `json:"surname"  validate:"max=100"`
	Document string `json:"document" validate:"max=20"`
	Role     string `json:"role"     validate:"required,oneof=admin regular"`
}

type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Document  string    `json:"document"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListAccountsParams struct {
	Search string
	Role   string
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Name:      a.Name,
		Surname:   a.Surname,
		Document:  a.Document,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToAccountResponseList(accounts []Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, ToAccountResponse(&a))
	}
	return responses
}
