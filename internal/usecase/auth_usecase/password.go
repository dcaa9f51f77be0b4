package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// SHA-256のhex。既存ユーザーのpasswordはこの形
type SHA256PasswordHasher struct{}

func NewSHA256PasswordHasher() *SHA256PasswordHasher {
	return &SHA256PasswordHasher{}
}

func (h *SHA256PasswordHasher) Hash(plain string) (string, error) {
	return sha256Hex(plain), nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// 保存形式を見て照合方法を切り替える（$2で始まればbcrypt）
type DigestVerifier struct{}

// DI
func NewDigestVerifier() *DigestVerifier {
	return &DigestVerifier{}
}

func (v *DigestVerifier) Verify(plain string, hashed string) bool {
	if strings.HasPrefix(hashed, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(sha256Hex(plain)), []byte(hashed)) == 1
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
