package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/blog/internal/storage/memory"
	"github.com/VitaminP8/blog/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionMiddleware(t *testing.T) {
	sessions, err := NewSessions(testSecret, time.Hour, false)
	require.NoError(t, err)

	users := memory.NewUserMemoryStorage()
	alice := &models.User{Email: "a@x.com", Password: "h", Name: "Alice"}
	require.NoError(t, users.CreateUser(context.Background(), alice))

	e := echo.New()
	e.Use(SessionMiddleware(sessions, users, zap.NewNop()))
	// тестовый обработчик, который показывает пользователя из контекста
	e.GET("/", func(c echo.Context) error {
		u, err := GetUserFromContext(c.Request().Context())
		if err != nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, fmt.Sprintf("user %d", u.ID))
	})

	serve := func(cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Valid session", func(t *testing.T) {
		token, err := sessions.Sign(alice.ID)
		require.NoError(t, err)

		rec := serve(&http.Cookie{Name: SessionCookieName, Value: token})
		assert.Equal(t, "user 1", rec.Body.String())
	})

	t.Run("No cookie", func(t *testing.T) {
		rec := serve(nil)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("Invalid token is cleared", func(t *testing.T) {
		rec := serve(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
		assert.Equal(t, "anonymous", rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Less(t, cookies[0].MaxAge, 0)
	})

	t.Run("Session of unknown user", func(t *testing.T) {
		token, err := sessions.Sign(999)
		require.NoError(t, err)

		rec := serve(&http.Cookie{Name: SessionCookieName, Value: token})
		assert.Equal(t, "anonymous", rec.Body.String())
	})
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	handler := AdminOnly(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	run := func(u *models.User) error {
		req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
		if u != nil {
			req = req.WithContext(WithUser(req.Context(), u))
		}
		return handler(e.NewContext(req, httptest.NewRecorder()))
	}

	t.Run("Admin passes", func(t *testing.T) {
		assert.NoError(t, run(&models.User{ID: 1, IsAdmin: true}))
	})

	t.Run("Regular user is forbidden", func(t *testing.T) {
		err := run(&models.User{ID: 2})
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("Anonymous is forbidden", func(t *testing.T) {
		err := run(nil)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}
