package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/VitaminP8/blog/internal/auth"
	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/internal/forms"
	"github.com/VitaminP8/blog/internal/post"
	"github.com/VitaminP8/blog/internal/user"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// now вынесен в переменную, чтобы тесты могли зафиксировать дату поста
var now = time.Now

// App служит корневой точкой для всех обработчиков.
// Здесь внедряются зависимости: хранилища, сессии, логгер.
type App struct {
	l        *zap.Logger
	users    user.UserStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	accounts *user.Accounts
	sessions *auth.Sessions
	forms    *forms.Validator
}

func NewApp(
	l *zap.Logger,
	users user.UserStorage,
	posts post.PostStorage,
	comments comment.CommentStorage,
	accounts *user.Accounts,
	sessions *auth.Sessions,
) *App {
	return &App{
		l:        l,
		users:    users,
		posts:    posts,
		comments: comments,
		accounts: accounts,
		sessions: sessions,
		forms:    forms.NewValidator(),
	}
}

type Options struct {
	CSRF         bool // проверять CSRF токен у POST форм
	CookieSecure bool
}

// Echo собирает HTTP сервер со всеми маршрутами блога.
func (a *App) Echo(opts Options) (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if opts.CSRF {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "form:_csrf",
			CookieName:     "_csrf",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   opts.CookieSecure,
			CookieSameSite: http.SameSiteLaxMode,
		}))
	}
	e.Use(auth.SessionMiddleware(a.sessions, a.users, a.l))

	getPost := []string{http.MethodGet, http.MethodPost}

	e.GET("/", a.Index)
	e.Match(getPost, "/register", a.Register)
	e.Match(getPost, "/login", a.Login)
	e.GET("/logout", a.Logout)

	e.Match(getPost, "/post/:id", a.ShowPost)
	e.Match(getPost, "/edit-comment/:id", a.EditComment)
	e.GET("/delete-comment/:id", a.DeleteComment)

	e.Match(getPost, "/new-post", a.NewPost, auth.AdminOnly)
	e.Match(getPost, "/edit-post/:id", a.EditPost, auth.AdminOnly)
	e.GET("/delete/:id", a.DeletePost, auth.AdminOnly)

	e.GET("/about", a.About)
	e.GET("/contact", a.Contact)

	return e, nil
}

// paramID разбирает :id из пути; нечисловой ID - это 404, как и неизвестный.
func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return uint(id), nil
}

func isPost(c echo.Context) bool {
	return c.Request().Method == http.MethodPost
}
