package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`

	Age           *int
	Sex           string
	Weight        *float64 // kg
	Height        *float64 // cm
	ActivityLevel string

	CalorieGoal       int `gorm:"default:2000"`
	ProteinGoal       float64
	FatGoal           float64
	CarbohydratesGoal float64

	// Minutes east of UTC; nil when the client never reported a timezone.
	UTCOffsetMinutes *int

	ResetToken    string
	ResetTokenExp time.Time
}
