package model

import (
	"time"

	"gorm.io/gorm"
)

// Section is an immutable content unit. Two sections are content-equal when
// name and content match, regardless of identity. The diff engine reuses
// equal content by reference and never mutates a section in place.
type Section struct {
	Code    string `gorm:"primaryKey;uuid;not null"`
	Name    string `gorm:"not null"`
	Content string `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
