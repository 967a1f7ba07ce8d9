package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blog/internal/post"
	"github.com/VitaminP8/blog/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, p *models.Post) error {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return err
	}

	if err := checkAuthor(db, p.AuthorID); err != nil {
		return err
	}

	taken, err := titleTaken(db, p.Title, 0)
	if err != nil {
		return err
	}
	if taken {
		return post.ErrTitleTaken
	}

	err = db.Create(p).Error
	if isUniqueViolation(err) {
		return post.ErrTitleTaken
	}
	if err != nil {
		return fmt.Errorf("could not create post: %w", err)
	}

	return nil
}

func (s *PostPostgresStorage) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var p models.Post
	err = db.Preload("Author").First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, post.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	return &p, nil
}

func (s *PostPostgresStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var posts []*models.Post
	err = db.Preload("Author").Order("id asc").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	return posts, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, p *models.Post) error {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return err
	}

	var existing models.Post
	err = db.First(&existing, p.ID).Error
	if gorm.IsRecordNotFoundError(err) {
		return post.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get post: %w", err)
	}

	taken, err := titleTaken(db, p.Title, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return post.ErrTitleTaken
	}

	err = db.Model(&existing).Updates(map[string]interface{}{
		"title":    p.Title,
		"subtitle": p.Subtitle,
		"body":     p.Body,
		"img_url":  p.ImgURL,
	}).Error
	if isUniqueViolation(err) {
		return post.ErrTitleTaken
	}
	if err != nil {
		return fmt.Errorf("could not update post: %w", err)
	}

	return nil
}

func (s *PostPostgresStorage) DeletePostByID(ctx context.Context, id uint) error {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return err
	}

	// комментарии удаляются в той же транзакции, что и пост
	return db.Transaction(func(tx *gorm.DB) error {
		var p models.Post
		err := tx.First(&p, id).Error
		if gorm.IsRecordNotFoundError(err) {
			return post.ErrPostNotFound
		}
		if err != nil {
			return fmt.Errorf("could not get post: %w", err)
		}

		err = tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error
		if err != nil {
			return fmt.Errorf("could not delete comments of post: %w", err)
		}

		err = tx.Delete(&p).Error
		if err != nil {
			return fmt.Errorf("could not delete post: %w", err)
		}

		return nil
	})
}

func titleTaken(db *gorm.DB, title string, exceptID uint) (bool, error) {
	var count int
	err := db.Model(&models.Post{}).Where("title = ? AND id <> ?", title, exceptID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check title: %w", err)
	}
	return count > 0, nil
}
