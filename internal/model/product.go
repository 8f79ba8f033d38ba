package model

import "time"

// Product listing statuses. A new listing is pending until an admin
// approves (active) or rejects it; no re-submission flow exists.
const (
	ProductPending  = "pending"
	ProductActive   = "active"
	ProductSold     = "sold"
	ProductRejected = "rejected"
)

// Product is a marketplace listing owned by its seller. Only active
// listings of other users appear in the marketplace feed.
type Product struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	ProductName string    `gorm:"size:120;not null" json:"product_name"`
	Category    string    `gorm:"size:60" json:"category"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Unit        string    `gorm:"size:20" json:"unit"`
	Status      string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
