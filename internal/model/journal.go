package model

import "time"

// Farming activities a journal entry can record.
const (
	ActivityPlanting        = "planting"
	ActivityWatering        = "watering"
	ActivityFertilizing     = "fertilizing"
	ActivityPestControl     = "pest_control"
	ActivityHarvesting      = "harvesting"
	ActivitySoilPreparation = "soil_preparation"
)

// Activities lists every accepted journal activity, in display order.
var Activities = []string{
	ActivityPlanting,
	ActivityWatering,
	ActivityFertilizing,
	ActivityPestControl,
	ActivityHarvesting,
	ActivitySoilPreparation,
}

// ValidActivity reports whether a is one of the six farming activities.
func ValidActivity(a string) bool {
	for _, v := range Activities {
		if a == v {
			return true
		}
	}
	return false
}

// Journal is a logged farming activity with free-text detail and a date.
type Journal struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Activity        string    `gorm:"size:50;not null" json:"activity"`
	ActivityDetails string    `gorm:"type:text;not null" json:"activity_details"`
	Date            string    `gorm:"size:20;not null" json:"date"`
	UserID          uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
