package mocks

import (
	"context"

	"github.com/VitaminP8/blog/internal/user"
	"github.com/VitaminP8/blog/models"
)

// MockUserStorage реализует интерфейс user.UserStorage поверх настоящего хранилища
type MockUserStorage struct {
	failures
	next user.UserStorage
}

func NewMockUserStorage(next user.UserStorage) *MockUserStorage {
	return &MockUserStorage{next: next}
}

func (m *MockUserStorage) CreateUser(ctx context.Context, u *models.User) error {
	if err := m.call("CreateUser"); err != nil {
		return err
	}
	return m.next.CreateUser(ctx, u)
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if err := m.call("GetUserByID"); err != nil {
		return nil, err
	}
	return m.next.GetUserByID(ctx, id)
}

func (m *MockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := m.call("GetUserByEmail"); err != nil {
		return nil, err
	}
	return m.next.GetUserByEmail(ctx, email)
}
