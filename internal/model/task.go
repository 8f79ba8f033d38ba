package model

import "time"

// Task is a dated to-do item. Dates are stored as "YYYY-MM-DD" strings to
// match the wire format used by the dashboard.
type Task struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null;index:idx_tasks_user_title" json:"title"`
	Date      string    `gorm:"size:20" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes"`
	UserID    uint64    `gorm:"not null;index:idx_tasks_user_title" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
