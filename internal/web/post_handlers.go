package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/VitaminP8/blog/internal/auth"
	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/internal/forms"
	"github.com/VitaminP8/blog/internal/post"
	"github.com/VitaminP8/blog/models"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	flashLoginToComment = "You need to login or register to comment."
	errTitleTaken       = "A post with this title already exists."
)

func (a *App) Index(c echo.Context) error {
	posts, err := a.posts.GetAllPosts(c.Request().Context())
	if err != nil {
		return a.internalError("failed to list posts", err)
	}

	return a.render(c, http.StatusOK, "index.html", &page{Posts: posts})
}

// ShowPost показывает пост с комментариями; POST добавляет комментарий.
func (a *App) ShowPost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := a.posts.GetPostByID(ctx, id)
	if errors.Is(err, post.ErrPostNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return a.internalError("failed to get post", err, zap.Uint("post_id", id))
	}

	current := auth.CurrentUser(ctx)
	var form forms.CommentForm
	var errs forms.Errors

	if isPost(c) {
		if current == nil {
			setFlash(c, flashLoginToComment)
			return c.Redirect(http.StatusFound, "/login")
		}

		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest)
		}
		errs, err = a.forms.Validate(form)
		if err != nil {
			return a.internalError("failed to validate comment form", err)
		}

		if len(errs) == 0 {
			err = a.comments.CreateComment(ctx, &models.Comment{
				Text:     form.Text,
				AuthorID: current.ID,
				PostID:   p.ID,
			})
			if errors.Is(err, comment.ErrPostNotFound) {
				// пост удалили между чтением и записью комментария
				return echo.NewHTTPError(http.StatusNotFound)
			}
			if err != nil {
				return a.internalError("failed to create comment", err, zap.Uint("post_id", id))
			}
			return c.Redirect(http.StatusFound, postURL(p.ID))
		}
	}

	comments, err := a.comments.GetCommentsByPost(ctx, p.ID)
	if err != nil {
		return a.internalError("failed to list comments", err, zap.Uint("post_id", id))
	}

	views := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, commentView{Comment: cm, CanModify: auth.CanModifyComment(current, cm)})
	}

	return a.render(c, http.StatusOK, "post.html", &page{
		Post:        p,
		Comments:    views,
		CommentForm: form,
		Errors:      errs,
	})
}

func (a *App) NewPost(c echo.Context) error {
	var form forms.PostForm
	if !isPost(c) {
		return a.render(c, http.StatusOK, "make-post.html", &page{PostForm: form})
	}

	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	form.Normalize()

	errs, err := a.forms.Validate(form)
	if err != nil {
		return a.internalError("failed to validate post form", err)
	}
	if len(errs) > 0 {
		return a.render(c, http.StatusOK, "make-post.html", &page{PostForm: form, Errors: errs})
	}

	ctx := c.Request().Context()
	p := &models.Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     now().Format(models.DateLayout),
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		AuthorID: auth.CurrentUser(ctx).ID,
	}

	err = a.posts.CreatePost(ctx, p)
	if errors.Is(err, post.ErrTitleTaken) {
		return a.render(c, http.StatusOK, "make-post.html", &page{
			PostForm: form,
			Errors:   forms.Errors{"title": errTitleTaken},
		})
	}
	if err != nil {
		return a.internalError("failed to create post", err)
	}
	a.l.Info("post created", zap.Uint("post_id", p.ID))

	return c.Redirect(http.StatusFound, "/")
}

// EditPost не меняет автора и дату публикации.
func (a *App) EditPost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := a.posts.GetPostByID(ctx, id)
	if errors.Is(err, post.ErrPostNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return a.internalError("failed to get post", err, zap.Uint("post_id", id))
	}

	if !isPost(c) {
		form := forms.PostForm{
			Title:    p.Title,
			Subtitle: p.Subtitle,
			ImgURL:   p.ImgURL,
			Body:     p.Body,
		}
		return a.render(c, http.StatusOK, "make-post.html", &page{Post: p, PostForm: form, IsEdit: true})
	}

	var form forms.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	form.Normalize()

	errs, err := a.forms.Validate(form)
	if err != nil {
		return a.internalError("failed to validate post form", err)
	}
	if len(errs) > 0 {
		return a.render(c, http.StatusOK, "make-post.html", &page{Post: p, PostForm: form, Errors: errs, IsEdit: true})
	}

	p.Title = form.Title
	p.Subtitle = form.Subtitle
	p.ImgURL = form.ImgURL
	p.Body = form.Body

	err = a.posts.UpdatePost(ctx, p)
	switch {
	case errors.Is(err, post.ErrTitleTaken):
		return a.render(c, http.StatusOK, "make-post.html", &page{
			Post:     p,
			PostForm: form,
			Errors:   forms.Errors{"title": errTitleTaken},
			IsEdit:   true,
		})
	case errors.Is(err, post.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	case err != nil:
		return a.internalError("failed to update post", err, zap.Uint("post_id", id))
	}

	return c.Redirect(http.StatusFound, postURL(p.ID))
}

// DeletePost удаляет пост вместе с его комментариями.
func (a *App) DeletePost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	err = a.posts.DeletePostByID(c.Request().Context(), id)
	if errors.Is(err, post.ErrPostNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return a.internalError("failed to delete post", err, zap.Uint("post_id", id))
	}
	a.l.Info("post deleted", zap.Uint("post_id", id))

	return c.Redirect(http.StatusFound, "/")
}

func postURL(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}
