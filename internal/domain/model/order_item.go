package model

// 注文時点の明細スナップショット
type OrderItem struct {
	BookID     string `json:"id"`
	Title      string `json:"title"`
	Price      string `json:"price"`
	PriceCents int64  `json:"priceCents"`
}

// OrderItemsFromCartはカートの明細を注文明細に写す（価格はセントに変換）
func OrderItemsFromCart(c Cart) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(c))
	for _, l := range c {
		cents, err := l.PriceCents()
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItem{
			BookID:     l.ID,
			Title:      l.Title,
			Price:      l.Price,
			PriceCents: cents,
		})
	}
	return items, nil
}
