package model

import "time"

// Inventory is a stocked item. Repeated adds for the same (user, item)
// accumulate into Quantity instead of creating a second row.
type Inventory struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Item      string    `gorm:"size:120;not null;index:idx_inventory_user_item" json:"item"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UserID    uint64    `gorm:"not null;index:idx_inventory_user_item" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
