package comment

import (
	"context"
	"errors"

	"github.com/VitaminP8/blog/models"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrPostNotFound    = errors.New("post not found")
)

type CommentStorage interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	UpdateComment(ctx context.Context, id uint, text string) error
	DeleteCommentByID(ctx context.Context, id uint) error
}
