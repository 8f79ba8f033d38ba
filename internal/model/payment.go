package model

import (
	"encoding/json"
	"time"
)

// Payment verification statuses, set only by admin handlers.
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// OrderItem is one cart line inside a payment's serialized order payload.
type OrderItem struct {
	Name     string  `json:"name"`
	Seller   string  `json:"seller"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Payment records a marketplace checkout awaiting admin verification.
// OrderItems holds the cart as a JSON array; PaymentScreenshot stores the
// uploaded proof inline as base64 text rather than a separate blob.
type Payment struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	OrderID           string    `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	OrderItems        string    `gorm:"type:text;not null" json:"order_items"`
	TotalAmount       float64   `gorm:"not null" json:"total_amount"`
	DeliveryName      string    `gorm:"size:120" json:"delivery_name"`
	DeliveryPhone     string    `gorm:"size:20" json:"delivery_phone"`
	DeliveryAddress   string    `gorm:"size:300" json:"delivery_address"`
	PaymentScreenshot string    `gorm:"type:text" json:"-"`
	PaymentStatus     string    `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	UserID            uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Items decodes the serialized cart. A payment whose payload fails to
// decode yields an empty slice so notification fan-out degrades quietly.
func (p *Payment) Items() []OrderItem {
	var items []OrderItem
	if err := json.Unmarshal([]byte(p.OrderItems), &items); err != nil {
		return nil
	}
	return items
}
