package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type User struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	SafetyMode    SafetyMode `json:"safety_mode"`
	CustomMessage string     `json:"custom_message"`
	PINHash       string     `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type SetPINRequest struct {
	UserID int    `json:"user_id"`
	PIN    string `json:"pin"`
}

type NotifyToken struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}
