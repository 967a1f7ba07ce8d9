package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// httpErrorHandler рисует страницу ошибки: код из *echo.HTTPError, иначе 500.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	} else {
		a.l.Error("unhandled error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	rerr := a.render(c, code, "error.html", &page{
		Status:     code,
		StatusText: http.StatusText(code),
	})
	if rerr != nil {
		a.l.Error("failed to render error page", zap.Error(rerr))
		_ = c.String(code, http.StatusText(code))
	}
}

// internalError логирует сбой хранилища и завершает запрос с 500.
func (a *App) internalError(msg string, err error, fields ...zap.Field) error {
	a.l.Error(msg, append(fields, zap.Error(err))...)
	return echo.NewHTTPError(http.StatusInternalServerError)
}
