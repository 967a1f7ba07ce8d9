package memory

import (
	"context"
	"sync"

	"github.com/VitaminP8/blog/internal/user"
	"github.com/VitaminP8/blog/models"
)

type UserMemoryStorage struct {
	mu      sync.Mutex
	users   map[uint]*models.User
	byEmail map[string]uint
	nextID  uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:   make(map[uint]*models.User),
		byEmail: make(map[string]uint),
		nextID:  1,
	}
}

func (s *UserMemoryStorage) CreateUser(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return user.ErrEmailTaken
	}

	u.ID = s.nextID
	s.nextID++
	// роль назначается при создании: администратор - первый зарегистрированный
	u.IsAdmin = len(s.users) == 0
	u.CreatedAt = now()

	stored := *u
	stored.Posts = nil
	stored.Comments = nil
	s.users[u.ID] = &stored
	s.byEmail[u.Email] = u.ID

	return nil
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, user.ErrUserNotFound
	}

	found := *u
	return &found, nil
}

func (s *UserMemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, user.ErrUserNotFound
	}

	found := *s.users[id]
	return &found, nil
}

// author возвращает копию пользователя для заполнения связей; отсутствующий пользователь - пустая структура.
func (s *UserMemoryStorage) author(id uint) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return models.User{}
	}
	return *u
}

func (s *UserMemoryStorage) exists(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.users[id]
	return exists
}
