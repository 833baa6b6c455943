package model

import (
	"time"

	"gorm.io/gorm"
)

// ArticleVersion is an immutable numbered snapshot of an article language.
//
// Actual is a nullable marker, not a boolean: nil means the version is not
// authoritative, a non-nil value means it is. At most one non-archived version
// per article language may carry the marker.
type ArticleVersion struct {
	Code                string `gorm:"primaryKey;uuid;not null"`
	Version             int    `gorm:"not null"`
	ArticleLanguageCode string `gorm:"uuid;not null;index"`
	SchemaCode          string `gorm:"uuid;not null;index"`
	Actual              *bool
	Enabled             bool `gorm:"default:true"`
	Archived            bool `gorm:"default:false"`

	Schema *Schema `gorm:"foreignKey:SchemaCode;references:Code"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// MarkActual returns the marker value stored on an authoritative version.
func MarkActual() *bool {
	actual := true
	return &actual
}

// IsActual reports whether the version carries the actual marker.
func (v *ArticleVersion) IsActual() bool {
	return v.Actual != nil && *v.Actual
}
