package auth

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/blog/internal/user"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionMiddleware достает пользователя из cookie сессии и кладет его в context запроса.
// Пользователь каждый раз читается из хранилища, поэтому роль и удаление аккаунта учитываются сразу.
func SessionMiddleware(sessions *Sessions, users user.UserStorage, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c) // анонимный запрос, пропускаем
			}

			userID, err := sessions.Parse(cookie.Value)
			if err != nil {
				l.Debug("invalid session cookie", zap.Error(err))
				sessions.Logout(c)
				return next(c)
			}

			req := c.Request()
			u, err := users.GetUserByID(req.Context(), userID)
			if errors.Is(err, user.ErrUserNotFound) {
				sessions.Logout(c)
				return next(c)
			}
			if err != nil {
				l.Error("failed to load session user", zap.Uint("id", userID), zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.SetRequest(req.WithContext(WithUser(req.Context(), u)))
			return next(c)
		}
	}
}

// AdminOnly пропускает только администратора; всем остальным, включая анонимных, - 403.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if RequireAdmin(CurrentUser(c.Request().Context())) != Allowed {
			return echo.NewHTTPError(http.StatusForbidden)
		}
		return next(c)
	}
}
