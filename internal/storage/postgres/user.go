package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blog/internal/user"
	"github.com/VitaminP8/blog/models"
	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) CreateUser(ctx context.Context, u *models.User) error {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return err
	}

	// подсчет и вставка в одной транзакции: роль администратора получает только первый пользователь
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx); err != nil {
			return err
		}

		var existing models.User
		err := tx.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			return user.ErrEmailTaken
		}
		if !gorm.IsRecordNotFoundError(err) {
			return fmt.Errorf("could not check email: %w", err)
		}

		var count int
		err = tx.Model(&models.User{}).Count(&count).Error
		if err != nil {
			return fmt.Errorf("could not count users: %w", err)
		}
		u.IsAdmin = count == 0

		err = tx.Create(u).Error
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		u.ID = 0
		return err
	}

	return nil
}

func (s *UserPostgresStorage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var u models.User
	err = db.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return &u, nil
}

func (s *UserPostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var u models.User
	err = db.Where("email = ?", email).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return &u, nil
}

// lockUsers сериализует регистрации: без блокировки две параллельные транзакции
// в READ COMMITTED обе видят count == 0 и создают двух администраторов.
// Блокировка не мешает чтению пользователей. sqlite и так пропускает только одного писателя.
func lockUsers(tx *gorm.DB) error {
	if tx.Dialect().GetName() != "postgres" {
		return nil
	}
	if err := tx.Exec("LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
		return fmt.Errorf("could not lock users table: %w", err)
	}
	return nil
}
