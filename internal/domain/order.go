package domain

import "time"

type OrderLine struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	CouponCode  string      `json:"couponCode,omitempty"`
	Items       []OrderLine `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}
