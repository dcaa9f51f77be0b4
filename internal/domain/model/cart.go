package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ブラウザのlocalStorageのキー
const (
	CartStorageKey            = "cart"
	RememberedEmailStorageKey = "rememberedEmail"
)

var (
	ErrCartIndexOutOfRange = errors.New("cart index out of range")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrTotalOverflow       = errors.New("cart total overflows")
)

// 1明細の上限（$1,000,000,000.00）
const MaxPriceCents int64 = 100_000_000_000

// カートの明細（localStorageのJSONと同じ形）
// priceは小数の文字列のまま持つ
type CartLine struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// PriceCentsはpriceをセント単位で返す
func (l CartLine) PriceCents() (int64, error) {
	return ParsePriceCents(l.Price)
}

// カート。ブラウザ側にだけ保存され、サーバーには保存しない
type Cart []CartLine

// ParseCartはlocalStorageの値を読む（壊れていればエラー）
func ParseCart(raw []byte) (Cart, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Cart{}, nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(trimmed), &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}

// LoadCartは壊れた値や未設定を空カートとして扱う
func LoadCart(raw string) Cart {
	c, err := ParseCart([]byte(raw))
	if err != nil {
		return Cart{}
	}
	return c
}

// EncodeはlocalStorageに書く形にする
func (c Cart) Encode() (string, error) {
	if c == nil {
		c = Cart{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Cart) Add(line CartLine) {
	*c = append(*c, line)
}

// RemoveAtは指定indexの明細を外す。範囲外なら何も変えない
func (c *Cart) RemoveAt(index int) error {
	if index < 0 || index >= len(*c) {
		return ErrCartIndexOutOfRange
	}
	next := make(Cart, 0, len(*c)-1)
	next = append(next, (*c)[:index]...)
	next = append(next, (*c)[index+1:]...)
	*c = next
	return nil
}

// Clearは注文確定時に全明細を消す
func (c *Cart) Clear() {
	*c = Cart{}
}

func (c Cart) Count() int {
	return len(c)
}

// Totalは明細価格の合計（セント）
func (c Cart) Total() (Money, error) {
	var sum int64
	for _, l := range c {
		cents, err := l.PriceCents()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", l.Title, err)
		}
		if sum, err = addCents(sum, cents); err != nil {
			return 0, err
		}
	}
	return Money(sum), nil
}

// 正の金額同士の足し算（桁あふれはエラー）
func addCents(sum int64, cents int64) (int64, error) {
	if sum > math.MaxInt64-cents {
		return 0, ErrTotalOverflow
	}
	return sum + cents, nil
}

// FormatTotalは画面表示用の合計（$0.00形式）
func (c Cart) FormatTotal() (string, error) {
	total, err := c.Total()
	if err != nil {
		return "", err
	}
	return total.String(), nil
}

// セント単位の金額
type Money int64

func (m Money) String() string {
	sign := ""
	v := uint64(m)
	if m < 0 {
		sign = "-"
		// MinInt64も符号なしなら表せる
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// ParsePriceCentsは"12.99"のような価格文字列をセントにする
func ParsePriceCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, ErrInvalidPrice
	}
	cents := math.Round(f * 100)
	if cents > float64(MaxPriceCents) {
		return 0, ErrInvalidPrice
	}
	return int64(cents), nil
}
