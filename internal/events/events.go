package events

import (
	"time"
)

// OrderLine is one purchased line item inside an OrderPlacedEvent.
type OrderLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// OrderPlacedEvent is published once per successful checkout.
type OrderPlacedEvent struct {
	EventID       string      `json:"event_id"`
	OrderID       string      `json:"order_id"`
	BuyerID       string      `json:"buyer_id"`
	TotalAmount   float64     `json:"total_amount"`
	Lines         []OrderLine `json:"lines"`
	PaymentMethod string      `json:"payment_method"`
	Timestamp     time.Time   `json:"timestamp"`
}

// StockDepletedEvent is published when a checkout drains a product's
// stock to zero.
type StockDepletedEvent struct {
	EventID   string    `json:"event_id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}
