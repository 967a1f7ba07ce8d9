package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct {
	db *gorm.DB
}

func NewCommentPostgresStorage(db *gorm.DB) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, c *models.Comment) error {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var p models.Post
		err := tx.Select("id").First(&p, c.PostID).Error
		if gorm.IsRecordNotFoundError(err) {
			return comment.ErrPostNotFound
		}
		if err != nil {
			return fmt.Errorf("could not get post: %w", err)
		}

		if err := checkAuthor(tx, c.AuthorID); err != nil {
			return err
		}

		err = tx.Create(c).Error
		if err != nil {
			return fmt.Errorf("could not create comment: %w", err)
		}
		return nil
	})
}

func (s *CommentPostgresStorage) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var c models.Comment
	err = db.Preload("Author").First(&c, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, comment.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment by id: %w", err)
	}

	return &c, nil
}

func (s *CommentPostgresStorage) GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var comments []*models.Comment
	err = db.Preload("Author").Where("post_id = ?", postID).Order("id asc").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	return comments, nil
}

func (s *CommentPostgresStorage) UpdateComment(ctx context.Context, id uint, text string) error {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return err
	}

	result := db.Model(&models.Comment{}).Where("id = ?", id).Update("text", text)
	if result.Error != nil {
		return fmt.Errorf("could not update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

func (s *CommentPostgresStorage) DeleteCommentByID(ctx context.Context, id uint) error {
	db, err := withContext(ctx, s.db)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return fmt.Errorf("could not delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}
