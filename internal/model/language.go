package model

import (
	"time"

	"gorm.io/gorm"
)

// Language is a reference entity naming an available translation language.
type Language struct {
	Code string `gorm:"primaryKey;uuid;not null"`
	Name string `gorm:"not null;unique"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
