package postgres

import (
	"context"
	"testing"

	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentPostgresStorage_CreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful comment creation", func(t *testing.T) {
		db := setupTestDB(t)
		storage := NewCommentPostgresStorage(db)
		userID := createTestUser(t, db)
		postID := createTestPost(t, db, userID, "Hello")

		c := &models.Comment{Text: "<p>Nice</p>", AuthorID: userID, PostID: postID}
		err := storage.CreateComment(ctx, c)
		require.NoError(t, err)
		assert.NotZero(t, c.ID)

		// Проверяем, что комментарий действительно создан в БД
		var dbComment models.Comment
		require.NoError(t, db.First(&dbComment, c.ID).Error)
		assert.Equal(t, "<p>Nice</p>", dbComment.Text)
		assert.Equal(t, userID, dbComment.AuthorID)
		assert.Equal(t, postID, dbComment.PostID)
	})

	t.Run("Error when creating comment for non-existent post", func(t *testing.T) {
		db := setupTestDB(t)
		storage := NewCommentPostgresStorage(db)
		userID := createTestUser(t, db)

		err := storage.CreateComment(ctx, &models.Comment{Text: "x", AuthorID: userID, PostID: 999})
		assert.ErrorIs(t, err, comment.ErrPostNotFound)
	})

	t.Run("Error on unknown author", func(t *testing.T) {
		db := setupTestDB(t)
		storage := NewCommentPostgresStorage(db)
		userID := createTestUser(t, db)
		postID := createTestPost(t, db, userID, "Post")

		err := storage.CreateComment(ctx, &models.Comment{Text: "x", AuthorID: 999, PostID: postID})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "author 999 does not exist")

		var count int
		require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestCommentPostgresStorage_GetComments(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	storage := NewCommentPostgresStorage(db)
	aliceID := createTestUser(t, db)
	bobID := createTestUser(t, db)
	postID := createTestPost(t, db, aliceID, "Hello")
	otherID := createTestPost(t, db, aliceID, "Other")

	first := &models.Comment{Text: "1", AuthorID: bobID, PostID: postID}
	require.NoError(t, storage.CreateComment(ctx, first))
	require.NoError(t, storage.CreateComment(ctx, &models.Comment{Text: "other", AuthorID: bobID, PostID: otherID}))
	require.NoError(t, storage.CreateComment(ctx, &models.Comment{Text: "2", AuthorID: aliceID, PostID: postID}))

	t.Run("Comments of a post with authors", func(t *testing.T) {
		comments, err := storage.GetCommentsByPost(ctx, postID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "1", comments[0].Text)
		assert.Equal(t, bobID, comments[0].Author.ID)
		assert.Equal(t, "2", comments[1].Text)
		assert.Equal(t, aliceID, comments[1].Author.ID)
	})

	t.Run("Post without comments", func(t *testing.T) {
		emptyID := createTestPost(t, db, aliceID, "Quiet")

		comments, err := storage.GetCommentsByPost(ctx, emptyID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("Comment by ID", func(t *testing.T) {
		found, err := storage.GetCommentByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "1", found.Text)
		assert.Equal(t, bobID, found.Author.ID)
	})

	t.Run("Non-existent comment", func(t *testing.T) {
		_, err := storage.GetCommentByID(ctx, 999)
		assert.ErrorIs(t, err, comment.ErrCommentNotFound)
	})
}

func TestCommentPostgresStorage_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	storage := NewCommentPostgresStorage(db)
	userID := createTestUser(t, db)
	postID := createTestPost(t, db, userID, "Hello")

	c := &models.Comment{Text: "before", AuthorID: userID, PostID: postID}
	require.NoError(t, storage.CreateComment(ctx, c))

	t.Run("Update text", func(t *testing.T) {
		require.NoError(t, storage.UpdateComment(ctx, c.ID, "after"))

		saved, err := storage.GetCommentByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", saved.Text)
	})

	t.Run("Update non-existent comment", func(t *testing.T) {
		err := storage.UpdateComment(ctx, 999, "x")
		assert.ErrorIs(t, err, comment.ErrCommentNotFound)
	})

	t.Run("Delete comment leaves the post", func(t *testing.T) {
		require.NoError(t, storage.DeleteCommentByID(ctx, c.ID))

		_, err := storage.GetCommentByID(ctx, c.ID)
		assert.ErrorIs(t, err, comment.ErrCommentNotFound)

		_, err = NewPostPostgresStorage(db).GetPostByID(ctx, postID)
		assert.NoError(t, err)
	})

	t.Run("Delete non-existent comment", func(t *testing.T) {
		err := storage.DeleteCommentByID(ctx, c.ID)
		assert.ErrorIs(t, err, comment.ErrCommentNotFound)
	})
}

// Тестирование многопоточности с использованием SQLite в режиме in-memory не имеет смысла:
// хранилище делегирует изоляцию транзакциям PostgreSQL.
