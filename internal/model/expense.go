package model

import "time"

// Indian cropping seasons an expense can be booked against.
const (
	SeasonKharif = "kharif"
	SeasonRabi   = "rabi"
	SeasonZaid   = "zaid"
)

// ValidSeason reports whether s is one of the three cropping seasons.
func ValidSeason(s string) bool {
	switch s {
	case SeasonKharif, SeasonRabi, SeasonZaid:
		return true
	}
	return false
}

// Expense is a cost entry attributed to a cropping season.
type Expense struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Item      string    `gorm:"size:120;not null" json:"item"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Season    string    `gorm:"size:20;not null" json:"season"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
