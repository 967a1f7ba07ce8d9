package web

import (
	"crypto/md5"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/VitaminP8/blog/internal/auth"
	"github.com/VitaminP8/blog/internal/forms"
	"github.com/VitaminP8/blog/models"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// page - данные для всех шаблонов; общие поля заполняет App.render.
type page struct {
	CurrentUser *models.User
	IsAdmin     bool
	CSRF        string
	Flash       string
	Errors      forms.Errors

	Posts    []*models.Post
	Post     *models.Post
	Comments []commentView
	Comment  *models.Comment
	IsEdit   bool

	PostForm     forms.PostForm
	RegisterForm forms.RegisterForm
	LoginForm    forms.LoginForm
	CommentForm  forms.CommentForm

	Status     int
	StatusText string
}

type commentView struct {
	*models.Comment
	CanModify bool
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	policy := bluemonday.UGCPolicy()
	funcs := template.FuncMap{
		"gravatar": gravatarURL,
		// текст постов и комментариев хранится как HTML из редактора
		"richtext": func(s string) template.HTML {
			return template.HTML(policy.Sanitize(s))
		},
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutTemplate {
			continue
		}
		name := path.Base(file)
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutTemplate, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func (a *App) render(c echo.Context, code int, name string, p *page) error {
	p.CurrentUser = auth.CurrentUser(c.Request().Context())
	p.IsAdmin = auth.IsAdmin(p.CurrentUser)
	if token, ok := c.Get(csrfContextKey).(string); ok {
		p.CSRF = token
	}
	p.Flash = popFlash(c)

	return c.Render(code, name, p)
}

const csrfContextKey = "csrf"

func gravatarURL(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=100&r=g&d=retro", hash)
}

func (a *App) About(c echo.Context) error {
	return a.render(c, http.StatusOK, "about.html", &page{})
}

func (a *App) Contact(c echo.Context) error {
	return a.render(c, http.StatusOK, "contact.html", &page{})
}
