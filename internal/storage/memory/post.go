package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/blog/internal/post"
	"github.com/VitaminP8/blog/models"
)

// now вынесен в переменную, чтобы тесты могли зафиксировать время
var now = time.Now

// commentPurger удаляет комментарии поста; реализуется CommentMemoryStorage
type commentPurger interface {
	purgePost(postID uint)
}

type PostMemoryStorage struct {
	mu      sync.Mutex
	posts   map[uint]*models.Post
	byTitle map[string]uint
	nextID  uint

	users    *UserMemoryStorage // для заполнения автора (внедрение зависимости (DI))
	comments commentPurger      // выставляется в NewCommentMemoryStorage
}

func NewPostMemoryStorage(users *UserMemoryStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:   make(map[uint]*models.Post),
		byTitle: make(map[string]uint),
		nextID:  1,
		users:   users,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, p *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.users.exists(p.AuthorID) {
		return fmt.Errorf("author %d does not exist", p.AuthorID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTitle[p.Title]; exists {
		return post.ErrTitleTaken
	}

	p.ID = s.nextID
	s.nextID++
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	stored := *p
	stored.Author = models.User{}
	stored.Comments = nil
	s.posts[p.ID] = &stored
	s.byTitle[p.Title] = p.ID

	return nil
}

func (s *PostMemoryStorage) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	p, exists := s.posts[id]
	var found models.Post
	if exists {
		found = *p
	}
	s.mu.Unlock()

	if !exists {
		return nil, post.ErrPostNotFound
	}

	found.Author = s.users.author(found.AuthorID)
	return &found, nil
}

func (s *PostMemoryStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	posts := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		found := *p
		posts = append(posts, &found)
	}
	s.mu.Unlock()

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	for _, p := range posts {
		p.Author = s.users.author(p.AuthorID)
	}

	return posts, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, p *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.posts[p.ID]
	if !exists {
		return post.ErrPostNotFound
	}

	if ownerID, taken := s.byTitle[p.Title]; taken && ownerID != p.ID {
		return post.ErrTitleTaken
	}

	delete(s.byTitle, stored.Title)
	stored.Title = p.Title
	stored.Subtitle = p.Subtitle
	stored.Body = p.Body
	stored.ImgURL = p.ImgURL
	stored.UpdatedAt = now()
	s.byTitle[stored.Title] = stored.ID

	return nil
}

func (s *PostMemoryStorage) DeletePostByID(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// лок постов отпускаем до удаления комментариев: CreateComment берет локи в обратном порядке
	s.mu.Lock()
	p, exists := s.posts[id]
	if exists {
		delete(s.byTitle, p.Title)
		delete(s.posts, id)
	}
	s.mu.Unlock()

	if !exists {
		return post.ErrPostNotFound
	}

	if s.comments != nil {
		s.comments.purgePost(id)
	}

	return nil
}

func (s *PostMemoryStorage) exists(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.posts[id]
	return exists
}
