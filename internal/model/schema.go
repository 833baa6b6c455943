package model

import (
	"time"

	"gorm.io/gorm"
)

// Schema is a versioned snapshot of a document's ordered sections.
//
// A schema with a non-nil ArticleVersion is published; approval clears the
// parent code. A draft schema's ParentCode names the schema it was branched
// from, which is the lineage the renovation check walks.
type Schema struct {
	Code       string  `gorm:"primaryKey;uuid;not null"`
	ParentCode *string `gorm:"uuid;index"`

	Sections       []SchemaSection `gorm:"foreignKey:SchemaCode;references:Code"`
	Parent         *Schema         `gorm:"foreignKey:ParentCode;references:Code"`
	ArticleVersion *ArticleVersion `gorm:"foreignKey:SchemaCode;references:Code"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsPublished reports whether the schema has been approved into a version.
func (s *Schema) IsPublished() bool {
	return s.ArticleVersion != nil
}

// SchemaSection links a schema to a section at a position. Order values are
// unique and contiguous from 0 within one schema.
type SchemaSection struct {
	Code        string `gorm:"primaryKey;uuid;not null"`
	SchemaCode  string `gorm:"uuid;not null;index"`
	SectionCode string `gorm:"uuid;not null;index"`
	Order       int    `gorm:"column:order_index;not null"`

	Section Section `gorm:"foreignKey:SectionCode;references:Code"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
