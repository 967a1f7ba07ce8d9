package post

import (
	"context"
	"errors"

	"github.com/VitaminP8/blog/models"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrTitleTaken   = errors.New("post title already exists")
)

type PostStorage interface {
	CreatePost(ctx context.Context, p *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	// UpdatePost перезаписывает title, subtitle, body и img_url поста p.ID.
	UpdatePost(ctx context.Context, p *models.Post) error
	// DeletePostByID удаляет пост вместе со всеми его комментариями.
	DeletePostByID(ctx context.Context, id uint) error
}
