package user

import (
	"context"
	"errors"

	"github.com/VitaminP8/blog/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrWrongPassword = errors.New("incorrect password")
)

type UserStorage interface {
	// CreateUser сохраняет пользователя и выставляет ему ID.
	// Первый зарегистрированный пользователь становится администратором.
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
