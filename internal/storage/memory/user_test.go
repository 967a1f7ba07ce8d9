package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/VitaminP8/blog/internal/user"
	"github.com/VitaminP8/blog/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser() *models.User {
	return &models.User{
		Email:    gofakeit.UUID() + "@example.com",
		Password: "hash",
		Name:     gofakeit.Name(),
	}
}

func TestUserMemoryStorage_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("First user becomes admin", func(t *testing.T) {
		storage := NewUserMemoryStorage()

		alice := &models.User{Email: "a@x.com", Password: "hash1", Name: "Alice"}
		err := storage.CreateUser(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, uint(1), alice.ID)
		assert.True(t, alice.IsAdmin)

		bob := &models.User{Email: "b@x.com", Password: "hash2", Name: "Bob"}
		err = storage.CreateUser(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, uint(2), bob.ID)
		assert.False(t, bob.IsAdmin)
	})

	t.Run("Admin flag from caller is ignored", func(t *testing.T) {
		storage := NewUserMemoryStorage()
		require.NoError(t, storage.CreateUser(ctx, newTestUser()))

		sneaky := newTestUser()
		sneaky.IsAdmin = true
		require.NoError(t, storage.CreateUser(ctx, sneaky))

		saved, err := storage.GetUserByID(ctx, sneaky.ID)
		require.NoError(t, err)
		assert.False(t, saved.IsAdmin)
	})

	t.Run("Register user with duplicate email", func(t *testing.T) {
		storage := NewUserMemoryStorage()

		first := newTestUser()
		require.NoError(t, storage.CreateUser(ctx, first))

		duplicate := newTestUser()
		duplicate.Email = first.Email
		err := storage.CreateUser(ctx, duplicate)
		assert.ErrorIs(t, err, user.ErrEmailTaken)
		assert.Len(t, storage.users, 1)
	})

	t.Run("Email comparison is case-sensitive", func(t *testing.T) {
		storage := NewUserMemoryStorage()

		require.NoError(t, storage.CreateUser(ctx, &models.User{Email: "a@x.com", Name: "A"}))
		assert.NoError(t, storage.CreateUser(ctx, &models.User{Email: "A@x.com", Name: "A"}))
	})

	t.Run("Cancelled context", func(t *testing.T) {
		storage := NewUserMemoryStorage()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := storage.CreateUser(cancelled, newTestUser())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, storage.users)
	})
}

func TestUserMemoryStorage_GetUser(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	u := newTestUser()
	require.NoError(t, storage.CreateUser(ctx, u))

	t.Run("By ID", func(t *testing.T) {
		found, err := storage.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, found.Email)
		assert.Equal(t, u.Name, found.Name)
	})

	t.Run("By email", func(t *testing.T) {
		found, err := storage.GetUserByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
	})

	t.Run("Returned user is a copy", func(t *testing.T) {
		found, err := storage.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		found.Name = "changed"

		again, err := storage.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Name, again.Name)
	})

	t.Run("Non-existent user", func(t *testing.T) {
		_, err := storage.GetUserByID(ctx, 999)
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		_, err = storage.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUserMemoryStorage_ConcurrentOperations(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	var wg sync.WaitGroup
	numGoroutines := 20

	users := make([]*models.User, numGoroutines)
	for i := range users {
		users[i] = newTestUser()
	}

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(u *models.User) {
			defer wg.Done()
			assert.NoError(t, storage.CreateUser(ctx, u))
		}(users[i])
	}

	wg.Wait()

	// администратор ровно один, и это пользователь с наименьшим ID
	admins := 0
	for id, u := range storage.users {
		if u.IsAdmin {
			admins++
			assert.Equal(t, uint(1), id)
		}
	}
	assert.Equal(t, 1, admins)
	assert.Len(t, storage.users, numGoroutines)
}
