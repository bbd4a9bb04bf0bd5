package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int             `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Email        string          `db:"email" json:"email"`
	PasswordHash string          `db:"password_hash" json:"-"`
	Role         string          `db:"role" json:"role"`
	Balance      decimal.Decimal `db:"balance" json:"balance"`
	IsActive     bool            `db:"is_active" json:"isActive"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type ToggleActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
