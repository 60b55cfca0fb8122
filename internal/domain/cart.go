package domain

// CartLine - одна позиция корзины с накопленным количеством.
// Имена JSON-полей совпадают с форматом, который хранится в профиле под ключом "cart".
type CartLine struct {
	ItemID    string  `json:"_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal - стоимость позиции (цена * количество).
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// OrderRequestItem - позиция в теле POST /orders.
type OrderRequestItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// OrderRequest - тело запроса на оформление заказа.
type OrderRequest struct {
	Items []OrderRequestItem `json:"items"`
}

// NewOrderRequest - собирает запрос на заказ из снимка корзины.
func NewOrderRequest(lines []CartLine) OrderRequest {
	items := make([]OrderRequestItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderRequestItem{MenuItemID: l.ItemID, Quantity: l.Quantity})
	}
	return OrderRequest{Items: items}
}
