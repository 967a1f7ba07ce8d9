package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/VitaminP8/blog/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Open подключается к базе данных. driver - "postgres" или "sqlite3" (локальный запуск и тесты).
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return db, nil
}

// Migrate создает таблицы users, posts, comments и внешние ключи между ними.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// sqlite не умеет ALTER TABLE ADD CONSTRAINT, там связи проверяют сами хранилища
	if db.Dialect().GetName() != "postgres" {
		return nil
	}

	foreignKeys := []struct {
		model interface{}
		field string
		dest  string
	}{
		{&models.Post{}, "author_id", "users(id)"},
		{&models.Comment{}, "author_id", "users(id)"},
		{&models.Comment{}, "post_id", "posts(id)"},
	}
	for _, fk := range foreignKeys {
		// AddForeignKey пропускает уже существующие ключи
		err = db.Model(fk.model).AddForeignKey(fk.field, fk.dest, "RESTRICT", "RESTRICT").Error
		if err != nil {
			return fmt.Errorf("failed to add foreign key %s -> %s: %w", fk.field, fk.dest, err)
		}
	}

	return nil
}

// withContext не дает начать запрос для уже отмененного запроса.
// jinzhu/gorm не передает context в драйвер, поэтому проверка делается перед каждой операцией.
func withContext(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return db, nil
}

// checkAuthor проверяет ссылку на автора до вставки: на sqlite внешних ключей нет.
func checkAuthor(db *gorm.DB, authorID uint) error {
	var count int
	err := db.Model(&models.User{}).Where("id = ?", authorID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("could not check author: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("author %d does not exist", authorID)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
