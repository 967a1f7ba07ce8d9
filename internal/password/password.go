// Package password хеширует и проверяет пароли пользователей.
//
// Новые хеши создаются выбранным алгоритмом, а проверка определяет алгоритм по префиксу
// сохраненного хеша, поэтому смена PASSWORD_HASHER не ломает вход старых пользователей.
package password

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	Bcrypt   = "bcrypt"
	Argon2id = "argon2id"
)

const argon2idPrefix = "$argon2id$"

// MaxBcryptLength - bcrypt учитывает только первые 72 байта пароля.
const MaxBcryptLength = 72

var ErrTooLong = errors.New("password is too long")

type Hasher struct {
	algorithm  string
	bcryptCost int
}

func New(algorithm string) (*Hasher, error) {
	switch algorithm {
	case Bcrypt, Argon2id:
		return &Hasher{algorithm: algorithm, bcryptCost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher: %s", algorithm)
	}
}

func (h *Hasher) Algorithm() string {
	return h.algorithm
}

func (h *Hasher) Hash(plain string) (string, error) {
	if h.algorithm == Argon2id {
		hash, err := argon2id.CreateHash(plain, argon2id.DefaultParams)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return hash, nil
	}

	if len(plain) > MaxBcryptLength {
		return "", ErrTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare сообщает, соответствует ли plain сохраненному хешу.
// Несовпадение - это (false, nil), ошибка означает поврежденный хеш.
func (h *Hasher) Compare(hash, plain string) (bool, error) {
	if strings.HasPrefix(hash, argon2idPrefix) {
		match, _, err := argon2id.CheckHash(plain, hash)
		if err != nil {
			return false, fmt.Errorf("failed to check password: %w", err)
		}
		return match, nil
	}

	// такой пароль не мог быть захеширован через bcrypt
	if len(plain) > MaxBcryptLength {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check password: %w", err)
	}
	return true, nil
}
