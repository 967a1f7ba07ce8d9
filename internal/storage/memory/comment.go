package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/models"
)

type CommentMemoryStorage struct {
	mu       sync.Mutex
	comments map[uint]*models.Comment
	nextID   uint

	posts *PostMemoryStorage // Хранилище постов (внедрение зависимости (DI))
	users *UserMemoryStorage
}

// NewCommentMemoryStorage также подписывает хранилище на удаление постов, чтобы не оставалось осиротевших комментариев.
func NewCommentMemoryStorage(posts *PostMemoryStorage, users *UserMemoryStorage) *CommentMemoryStorage {
	s := &CommentMemoryStorage{
		comments: make(map[uint]*models.Comment),
		nextID:   1,
		posts:    posts,
		users:    users,
	}
	posts.comments = s
	return s
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, c *models.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.users.exists(c.AuthorID) {
		return fmt.Errorf("author %d does not exist", c.AuthorID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// проверка под локом комментариев: удаление поста чистит комментарии уже после удаления самого поста
	if !s.posts.exists(c.PostID) {
		return comment.ErrPostNotFound
	}

	c.ID = s.nextID
	s.nextID++
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt

	stored := *c
	stored.Author = models.User{}
	s.comments[c.ID] = &stored

	return nil
}

func (s *CommentMemoryStorage) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	c, exists := s.comments[id]
	var found models.Comment
	if exists {
		found = *c
	}
	s.mu.Unlock()

	if !exists {
		return nil, comment.ErrCommentNotFound
	}

	found.Author = s.users.author(found.AuthorID)
	return &found, nil
}

func (s *CommentMemoryStorage) GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	var comments []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			found := *c
			comments = append(comments, &found)
		}
	}
	s.mu.Unlock()

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	for _, c := range comments {
		c.Author = s.users.author(c.AuthorID)
	}

	return comments, nil
}

func (s *CommentMemoryStorage) UpdateComment(ctx context.Context, id uint, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.comments[id]
	if !exists {
		return comment.ErrCommentNotFound
	}

	c.Text = text
	c.UpdatedAt = now()
	return nil
}

func (s *CommentMemoryStorage) DeleteCommentByID(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[id]; !exists {
		return comment.ErrCommentNotFound
	}

	delete(s.comments, id)
	return nil
}

func (s *CommentMemoryStorage) purgePost(postID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
}
