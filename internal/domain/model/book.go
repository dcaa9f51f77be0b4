package model

import "strings"

// 全カテゴリを表す値
const CategoryAll = "all"

// 店頭に並ぶ本
type Book struct {
	ID          string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Author      string `gorm:"type:varchar(255);not null" json:"author"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(50);not null;index" json:"category"`
	// カートと同じく小数の文字列
	Price string `gorm:"type:varchar(20);not null" json:"price"`
	Cover string `gorm:"type:varchar(255)" json:"cover"`
}

// Matchesは検索語とカテゴリの両方に合うか判定する
// 検索語はタイトル・著者・説明の部分一致（大文字小文字無視）
func (b Book) Matches(query string, category string) bool {
	q := strings.ToLower(query)

	matchesSearch := strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Description), q)

	matchesCategory := category == "" || category == CategoryAll || b.Category == category

	return matchesSearch && matchesCategory
}

// CartLineは「カートに入れる」で追加される明細
func (b Book) CartLine() CartLine {
	return CartLine{ID: b.ID, Title: b.Title, Price: b.Price}
}
