package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const SessionCookieName = "session"

type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Sessions выдает и проверяет подписанную cookie сессии. Состояние на сервере не хранится.
type Sessions struct {
	key    []byte
	ttl    time.Duration
	secure bool
}

func NewSessions(secret string, ttl time.Duration, secure bool) (*Sessions, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}

	return &Sessions{
		key:    []byte(secret),
		ttl:    ttl,
		secure: secure,
	}, nil
}

func (s *Sessions) Sign(userID uint) (string, error) {
	issued := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	})

	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Parse возвращает ID пользователя из валидного, не просроченного токена.
func (s *Sessions) Parse(tokenString string) (uint, error) {
	if len(tokenString) == 0 {
		return 0, errors.New("token string is empty")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse jwt failed: %w", err)
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, errors.New("invalid token")
	}

	return claims.UserID, nil
}

// Login переводит сессию в состояние authenticated-as(userID).
func (s *Sessions) Login(c echo.Context, userID uint) error {
	token, err := s.Sign(userID)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout переводит сессию в анонимное состояние независимо от текущего.
func (s *Sessions) Logout(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
