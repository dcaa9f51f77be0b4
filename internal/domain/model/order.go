package model

import "time"

// 注文の控え。チェックアウト完了時に作る
// カート自体は保存しない（明細のスナップショットだけ残す）
type Order struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`
	// ログイン済みのときだけ入る
	UserID     string       `gorm:"type:varchar(64);index" json:"userId,omitempty"`
	Items      []OrderItem  `gorm:"serializer:json;type:jsonb;not null" json:"items"`
	ItemCount  int          `gorm:"not null" json:"itemCount"`
	TotalCents int64        `gorm:"not null" json:"totalCents"`
	Proof      PaymentProof `gorm:"embedded;embeddedPrefix:proof_" json:"paymentProof"`
	CreatedAt  time.Time    `gorm:"not null;index" json:"createdAt"`
}

// 画面表示用の合計
func (o Order) Total() string {
	return Money(o.TotalCents).String()
}

// 支払い証明ファイル（中身の検証はしない）
type PaymentProof struct {
	Key         string `gorm:"type:varchar(512);not null" json:"key"`
	FileName    string `gorm:"type:varchar(255);not null" json:"fileName"`
	ContentType string `gorm:"type:varchar(100);not null" json:"contentType"`
	Size        int64  `gorm:"not null" json:"size"`
}
