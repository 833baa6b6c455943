package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups articles into a tree.
type Category struct {
	Code       string  `gorm:"primaryKey;uuid;not null"`
	Name       string  `gorm:"not null"`
	ParentCode *string `gorm:"uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
