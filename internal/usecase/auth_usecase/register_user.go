package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	FullName        string `json:"fullname" form:"fullname" validate:"required"`
	Username        string `json:"username" form:"username" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,storefront_email"`
	Address         string `json:"address" form:"address" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
}

// 会員登録の出力
type RegisterUserOutput struct {
	User        model.UserSummary
	AccessToken string
	ExpiresAt   time.Time
}

var (
	// 入力が不正
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidEmailFormat = errors.New("invalid email format")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 入力チェックの約束（実装はvalidatorパッケージ）
type InputValidator interface {
	ValidateRegister(ctx context.Context, in RegisterUserInput) error
	ValidateLogin(ctx context.Context, in LoginInput) error
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	validator InputValidator
	hasher    PasswordHasher
	issuer    AccessTokenIssuer
	clock     Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	validator InputValidator,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		issuer:    issuer,
		clock:     clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	// 必須 → 一致 → 形式 の順
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return out, err
	}

	email := strings.ToLower(in.Email)

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		FullName:  in.FullName,
		Username:  in.Username,
		Email:     email,
		Address:   in.Address,
		Password:  hashed,
		CreatedAt: now,
	}

	// 同時登録はユニークインデックスで弾かれる
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	token, exp, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return out, err
	}

	out.User = user.Summary()
	out.AccessToken = token
	out.ExpiresAt = exp
	return out, nil
}
