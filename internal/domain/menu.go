package domain

// MenuItem - позиция меню.
type MenuItem struct {
	ID           string  `json:"_id,omitempty"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
}

// Order - заказ, как его возвращает GET /orders.
type Order struct {
	ID          string             `json:"_id"`
	Customer    string             `json:"customer,omitempty"`
	TotalAmount float64            `json:"totalAmount"`
	Status      string             `json:"status"`
	Items       []OrderRequestItem `json:"items,omitempty"`
}
