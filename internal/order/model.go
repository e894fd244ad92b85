package order

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Order is a placed purchase. OrderNumber doubles as the payment
// gateway's transaction reference for the lifetime of the transaction.
type Order struct {
	ID               string        `json:"id"`
	OrderNumber      string        `json:"order_number"`
	CustomerName     string        `json:"customer_name"`
	CustomerEmail    string        `json:"customer_email"`
	CustomerPhone    string        `json:"customer_phone"`
	Address          string        `json:"address"`
	TotalAmount      float64       `json:"total_amount"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentReference *string       `json:"payment_reference,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	Items            []OrderItem   `json:"items,omitempty"`
}

// OrderItem snapshots the unit price at order time so later catalogue
// price changes never alter a placed order.
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`

	ProductName  string  `json:"product_name,omitempty"`
	ProductImage *string `json:"product_image,omitempty"`
}

// CreateOrderInput is the checkout boundary: customer fields plus a
// cart snapshot.
type CreateOrderInput struct {
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	Address       string           `json:"address"`
	TotalAmount   float64          `json:"total_amount"`
	Items         []CreateItemInput `json:"items"`
}

type CreateItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// VerificationResult is what the redirect path reports back to the
// success page.
type VerificationResult struct {
	OrderNumber     string        `json:"order_number"`
	Reference       string        `json:"reference"`
	Status          PaymentStatus `json:"status"`
	Amount          int64         `json:"amount"`
	GatewayResponse string        `json:"gateway_response,omitempty"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
}
