package auth

import "github.com/VitaminP8/blog/models"

// Decision - результат проверки прав для одного запроса.
type Decision int

const (
	Allowed Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// IsAdmin: nil - анонимный пользователь.
func IsAdmin(u *models.User) bool {
	return u != nil && u.IsAdmin
}

func CanModifyComment(u *models.User, c *models.Comment) bool {
	return u != nil && c != nil && (IsAdmin(u) || c.AuthorID == u.ID)
}

func RequireAdmin(u *models.User) Decision {
	switch {
	case u == nil:
		return Unauthenticated
	case !IsAdmin(u):
		return Forbidden
	default:
		return Allowed
	}
}

func RequireCommentOwner(u *models.User, c *models.Comment) Decision {
	switch {
	case u == nil:
		return Unauthenticated
	case !CanModifyComment(u, c):
		return Forbidden
	default:
		return Allowed
	}
}
