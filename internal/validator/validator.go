package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// 画面側と同じ簡易メール形式
// ブラウザの\sはUnicodeの空白（NBSP、全角スペース、BOMなど）も含む
const notSpaceOrAt = `[^\s\v\p{Z}\x{feff}@]`

var storefrontEmail = regexp.MustCompile(`^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)

// New は独自ルール込みのvalidatorを作る
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("storefront_email", func(fl validator.FieldLevel) bool {
		return storefrontEmail.MatchString(fl.Field().String())
	})
	return v
}

// echo.Validatorの実装（c.Validateで使う）
type EchoValidator struct {
	v *validator.Validate
}

func NewEchoValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{v: v}
}

func (ev *EchoValidator) Validate(i interface{}) error {
	return ev.v.Struct(i)
}
