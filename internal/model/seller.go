package model

import "time"

// Seller verification statuses.
const (
	VerificationNotRequested = "not_requested"
	VerificationPending      = "pending"
	VerificationApproved     = "approved"
	VerificationRejected     = "rejected"
)

// SellerProfile holds the farm credentials a user submits to become a
// verified marketplace seller. One row per user; Verified gates the
// ability to create product listings.
type SellerProfile struct {
	ID                 uint64    `gorm:"primaryKey" json:"id"`
	UserID             uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Username           string    `gorm:"size:80;not null" json:"username"`
	FarmName           string    `gorm:"size:120" json:"farm_name"`
	FarmLocation       string    `gorm:"size:200" json:"farm_location"`
	FarmSize           string    `gorm:"size:60" json:"farm_size"`
	CropsGrown         string    `gorm:"size:200" json:"crops_grown"`
	Phone              string    `gorm:"size:20" json:"phone"`
	Verified           bool      `gorm:"not null;default:false" json:"verified_farming_seller"`
	VerificationStatus string    `gorm:"size:20;not null;default:not_requested" json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
