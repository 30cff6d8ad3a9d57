package domain

import (
	"time"

	"notemaker-server/pkg/hash"

	"github.com/google/uuid"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser hashes password before it ever reaches the User value.
func NewUser(name, email, password string, now time.Time) (*User, error) {
	hashed, err := hash.Hash(password)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
	}, nil
}

func (u *User) CheckPassword(password string) bool {
	return hash.Matches(u.Password, password)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type SummarizeRequest struct {
	Text string `json:"text"`
}
