package mocks

import (
	"context"

	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/models"
)

type MockCommentStorage struct {
	failures
	next comment.CommentStorage
}

func NewMockCommentStorage(next comment.CommentStorage) *MockCommentStorage {
	return &MockCommentStorage{next: next}
}

func (m *MockCommentStorage) CreateComment(ctx context.Context, c *models.Comment) error {
	if err := m.call("CreateComment"); err != nil {
		return err
	}
	return m.next.CreateComment(ctx, c)
}

func (m *MockCommentStorage) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	if err := m.call("GetCommentByID"); err != nil {
		return nil, err
	}
	return m.next.GetCommentByID(ctx, id)
}

func (m *MockCommentStorage) GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if err := m.call("GetCommentsByPost"); err != nil {
		return nil, err
	}
	return m.next.GetCommentsByPost(ctx, postID)
}

func (m *MockCommentStorage) UpdateComment(ctx context.Context, id uint, text string) error {
	if err := m.call("UpdateComment"); err != nil {
		return err
	}
	return m.next.UpdateComment(ctx, id, text)
}

func (m *MockCommentStorage) DeleteCommentByID(ctx context.Context, id uint) error {
	if err := m.call("DeleteCommentByID"); err != nil {
		return err
	}
	return m.next.DeleteCommentByID(ctx, id)
}
