package validator

import (
	"context"
	"errors"

	auth "github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase/auth_usecase"

	"github.com/go-playground/validator/v10"
)

type authValidator struct {
	v *validator.Validate
}

// Usecaseは interface を依存注入
func NewAuthValidator(v *validator.Validate) auth.InputValidator {
	return &authValidator{v: v}
}

// 会員登録の入力を検証（必須 → 確認用パスワード → email形式）
func (a *authValidator) ValidateRegister(ctx context.Context, in auth.RegisterUserInput) error {
	tags, err := a.failedTags(in)
	if err != nil {
		return err
	}

	switch {
	case tags["required"]:
		return auth.ErrMissingFields
	case tags["eqfield"]:
		return auth.ErrPasswordMismatch
	case tags["storefront_email"]:
		return auth.ErrInvalidEmailFormat
	}
	return nil
}

// ログインの入力を検証
func (a *authValidator) ValidateLogin(ctx context.Context, in auth.LoginInput) error {
	tags, err := a.failedTags(in)
	if err != nil {
		return err
	}
	if tags["required"] {
		return auth.ErrMissingCredentials
	}
	return nil
}

// 失敗したルール名の集合
func (a *authValidator) failedTags(s interface{}) (map[string]bool, error) {
	err := a.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	tags := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		tags[fe.Tag()] = true
	}
	return tags, nil
}
