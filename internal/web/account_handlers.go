package web

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/blog/internal/forms"
	"github.com/VitaminP8/blog/internal/password"
	"github.com/VitaminP8/blog/internal/user"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	flashEmailTaken     = "You've already signed up with that email, log in instead!"
	flashBadCredentials = "Invalid email or password, please try again."
	errPasswordTooLong  = "Password is too long."
)

func (a *App) Register(c echo.Context) error {
	var form forms.RegisterForm
	if !isPost(c) {
		return a.render(c, http.StatusOK, "register.html", &page{RegisterForm: form})
	}

	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	form.Normalize()

	errs, err := a.forms.Validate(form)
	if err != nil {
		return a.internalError("failed to validate register form", err)
	}
	if len(errs) > 0 {
		form.Password = ""
		return a.render(c, http.StatusOK, "register.html", &page{RegisterForm: form, Errors: errs})
	}

	u, err := a.accounts.Register(c.Request().Context(), form.Email, form.Password, form.Name)
	if errors.Is(err, user.ErrEmailTaken) {
		setFlash(c, flashEmailTaken)
		return c.Redirect(http.StatusFound, "/login")
	}
	if errors.Is(err, password.ErrTooLong) {
		// validator считает символы, а bcrypt - байты
		form.Password = ""
		return a.render(c, http.StatusOK, "register.html", &page{
			RegisterForm: form,
			Errors:       forms.Errors{"password": errPasswordTooLong},
		})
	}
	if err != nil {
		return a.internalError("failed to register user", err, zap.String("email", form.Email))
	}

	if err := a.sessions.Login(c, u.ID); err != nil {
		return a.internalError("failed to start session", err, zap.Uint("user_id", u.ID))
	}
	a.l.Info("user registered", zap.Uint("user_id", u.ID), zap.Bool("admin", u.IsAdmin))

	return c.Redirect(http.StatusFound, "/")
}

func (a *App) Login(c echo.Context) error {
	var form forms.LoginForm
	if !isPost(c) {
		return a.render(c, http.StatusOK, "login.html", &page{LoginForm: form})
	}

	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	form.Normalize()

	errs, err := a.forms.Validate(form)
	if err != nil {
		return a.internalError("failed to validate login form", err)
	}
	if len(errs) > 0 {
		form.Password = ""
		return a.render(c, http.StatusOK, "login.html", &page{LoginForm: form, Errors: errs})
	}

	u, err := a.accounts.Authenticate(c.Request().Context(), form.Email, form.Password)
	if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrWrongPassword) {
		// одно сообщение на оба случая, чтобы не раскрывать зарегистрированные email
		a.l.Debug("login failed", zap.Error(err))
		setFlash(c, flashBadCredentials)
		return c.Redirect(http.StatusFound, "/login")
	}
	if err != nil {
		return a.internalError("failed to authenticate user", err)
	}

	if err := a.sessions.Login(c, u.ID); err != nil {
		return a.internalError("failed to start session", err, zap.Uint("user_id", u.ID))
	}

	return c.Redirect(http.StatusFound, "/")
}

func (a *App) Logout(c echo.Context) error {
	a.sessions.Logout(c)
	return c.Redirect(http.StatusFound, "/")
}
