// Package forms описывает формы блога и правила их проверки.
//
// Формы заполняются echo-биндером по тегам form и проверяются go-playground/validator по тегам validate.
// Ошибки возвращаются по имени поля формы, чтобы шаблон мог показать их рядом с полем.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type PostForm struct {
	Title    string `form:"title" validate:"required,notblank"`
	Subtitle string `form:"subtitle" validate:"required,notblank"`
	ImgURL   string `form:"img_url" validate:"required,notblank,http_url"`
	Body     string `form:"body" validate:"required,notblank"`
}

type RegisterForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,max=72"`
	Name     string `form:"name" validate:"required,notblank"`
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type CommentForm struct {
	Text string `form:"comment_text" validate:"required,notblank"`
}

// Errors - сообщение об ошибке по имени поля формы. Пустая карта - форма валидна.
type Errors map[string]string

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

var messages = map[string]string{
	"required": "This field is required.",
	"notblank": "This field is required.",
	"http_url": "Invalid URL.",
	"email":    "Invalid email address.",
	"max":      "Must be at most 72 characters long.",
}

type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// сообщения об ошибках привязываем к имени поля в HTML форме, а не в структуре
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &Validator{v: v}
}

// Validate проверяет форму целиком; возвращает все ошибки полей сразу.
func (v *Validator) Validate(form interface{}) (Errors, error) {
	err := v.v.Struct(form)
	if err == nil {
		return Errors{}, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	result := Errors{}
	for _, fe := range validationErrors {
		if result.Has(fe.Field()) {
			continue
		}
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		result[fe.Field()] = msg
	}
	return result, nil
}

// Normalize убирает пробелы по краям однострочных полей; пароль и HTML текст не трогаем.
func (f *PostForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Subtitle = strings.TrimSpace(f.Subtitle)
	f.ImgURL = strings.TrimSpace(f.ImgURL)
}

func (f *RegisterForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)
}

func (f *LoginForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}
