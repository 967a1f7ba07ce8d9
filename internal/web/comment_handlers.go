package web

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/blog/internal/auth"
	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/internal/forms"
	"github.com/VitaminP8/blog/models"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	flashLoginToEdit   = "You need to login to edit comments."
	flashLoginToDelete = "You need to login to delete comments."
)

// ownComment загружает комментарий и проверяет, что текущий пользователь может его менять.
// Анонимного пользователя отправляем на страницу входа.
func (a *App) ownComment(c echo.Context, loginFlash string) (*models.Comment, error) {
	ctx := c.Request().Context()
	current := auth.CurrentUser(ctx)
	if current == nil {
		setFlash(c, loginFlash)
		return nil, c.Redirect(http.StatusFound, "/login")
	}

	id, err := paramID(c)
	if err != nil {
		return nil, err
	}

	cm, err := a.comments.GetCommentByID(ctx, id)
	if errors.Is(err, comment.ErrCommentNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return nil, a.internalError("failed to get comment", err, zap.Uint("comment_id", id))
	}

	if auth.RequireCommentOwner(current, cm) != auth.Allowed {
		return nil, echo.NewHTTPError(http.StatusForbidden)
	}

	return cm, nil
}

func (a *App) EditComment(c echo.Context) error {
	cm, err := a.ownComment(c, flashLoginToEdit)
	if cm == nil {
		return err
	}

	if !isPost(c) {
		return a.render(c, http.StatusOK, "edit-comment.html", &page{
			Comment:     cm,
			CommentForm: forms.CommentForm{Text: cm.Text},
		})
	}

	var form forms.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	errs, err := a.forms.Validate(form)
	if err != nil {
		return a.internalError("failed to validate comment form", err)
	}
	if len(errs) > 0 {
		return a.render(c, http.StatusOK, "edit-comment.html", &page{Comment: cm, CommentForm: form, Errors: errs})
	}

	err = a.comments.UpdateComment(c.Request().Context(), cm.ID, form.Text)
	if errors.Is(err, comment.ErrCommentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return a.internalError("failed to update comment", err, zap.Uint("comment_id", cm.ID))
	}

	return c.Redirect(http.StatusFound, postURL(cm.PostID))
}

func (a *App) DeleteComment(c echo.Context) error {
	cm, err := a.ownComment(c, flashLoginToDelete)
	if cm == nil {
		return err
	}

	err = a.comments.DeleteCommentByID(c.Request().Context(), cm.ID)
	if errors.Is(err, comment.ErrCommentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return a.internalError("failed to delete comment", err, zap.Uint("comment_id", cm.ID))
	}

	return c.Redirect(http.StatusFound, postURL(cm.PostID))
}
