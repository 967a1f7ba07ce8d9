package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/VitaminP8/blog/models"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) (bool, error)
}

// Accounts регистрирует пользователей и проверяет их учетные данные.
type Accounts struct {
	store  UserStorage
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func NewAccounts(store UserStorage, hasher PasswordHasher) *Accounts {
	return &Accounts{
		store:  store,
		hasher: hasher,
	}
}

func (a *Accounts) Register(ctx context.Context, email, plainPassword, name string) (*models.User, error) {
	_, err := a.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("could not check email: %w", err)
	}

	hash, err := a.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:    email,
		Password: hash,
		Name:     name,
	}
	err = a.store.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate возвращает ErrUserNotFound или ErrWrongPassword при неудаче.
func (a *Accounts) Authenticate(ctx context.Context, email, plainPassword string) (*models.User, error) {
	u, err := a.store.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		// сравниваем с фиктивным хешем, чтобы по времени ответа нельзя было узнать, существует ли email
		a.compareDummy(plainPassword)
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	match, err := a.hasher.Compare(u.Password, plainPassword)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrWrongPassword
	}

	return u, nil
}

func (a *Accounts) compareDummy(plainPassword string) {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.Hash("dummy password")
	})
	if a.dummyHash != "" {
		_, _ = a.hasher.Compare(a.dummyHash, plainPassword)
	}
}
