package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	User        model.UserSummary
	AccessToken string
	ExpiresAt   time.Time
}

var (
	// emailかpasswordが空
	ErrMissingCredentials = errors.New("email and password are required")
	// メールまたはパスワードが違う
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type LoginUsecase struct {
	userRepo  repository.UserRepository
	validator InputValidator
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	validator InputValidator,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:  userRepo,
		validator: validator,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if err := u.validator.ValidateLogin(ctx, in); err != nil {
		return out, err
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.Password); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	token, exp, err := u.issuer.Issue(user.ID, u.clock.Now())
	if err != nil {
		return out, err
	}

	out.User = user.Summary()
	out.AccessToken = token
	out.ExpiresAt = exp
	return out, nil
}
