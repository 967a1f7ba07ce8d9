package mocks

import (
	"context"

	"github.com/VitaminP8/blog/internal/post"
	"github.com/VitaminP8/blog/models"
)

type MockPostStorage struct {
	failures
	next post.PostStorage
}

func NewMockPostStorage(next post.PostStorage) *MockPostStorage {
	return &MockPostStorage{next: next}
}

func (m *MockPostStorage) CreatePost(ctx context.Context, p *models.Post) error {
	if err := m.call("CreatePost"); err != nil {
		return err
	}
	return m.next.CreatePost(ctx, p)
}

func (m *MockPostStorage) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	if err := m.call("GetPostByID"); err != nil {
		return nil, err
	}
	return m.next.GetPostByID(ctx, id)
}

func (m *MockPostStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	if err := m.call("GetAllPosts"); err != nil {
		return nil, err
	}
	return m.next.GetAllPosts(ctx)
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, p *models.Post) error {
	if err := m.call("UpdatePost"); err != nil {
		return err
	}
	return m.next.UpdatePost(ctx, p)
}

func (m *MockPostStorage) DeletePostByID(ctx context.Context, id uint) error {
	if err := m.call("DeletePostByID"); err != nil {
		return err
	}
	return m.next.DeletePostByID(ctx, id)
}
