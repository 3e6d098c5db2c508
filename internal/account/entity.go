// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

type Account struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Surname      string    `db:"surname"`
	Document     string    `db:"document"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)
