package model

import "time"

// 会員。登録時に作成され、この経路では更新・削除しない
type User struct {
	ID       string `gorm:"type:varchar(64);primaryKey" json:"id"`
	FullName string `gorm:"column:fullname;type:varchar(255);not null" json:"fullname"`
	Username string `gorm:"type:varchar(255);not null" json:"username"`
	// 小文字化して保存（ユニーク）
	Email   string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Address string `gorm:"type:text;not null" json:"address"`
	// ダイジェストのみ保存（平文は保存しない）
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

// APIで返すユーザー情報（passwordは含めない）
type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Username: u.Username,
		Email:    u.Email,
	}
}
