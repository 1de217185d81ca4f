package entity

import (
	"context"
	"errors"
	"time"
)

var ErrAdminNotFound = errors.New("admin not found")

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminRepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	Upsert(ctx context.Context, admin *Admin) error
}
