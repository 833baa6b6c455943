package model

import (
	"time"

	"gorm.io/gorm"
)

// Article is a logical document. Its content lives on per-language versions;
// the article itself only carries identity, type and category.
type Article struct {
	Code         string  `gorm:"primaryKey;uuid;not null"`
	Type         string  `gorm:"not null"`
	CategoryCode *string `gorm:"uuid"`
	Enabled      bool    `gorm:"default:true"`
	Archived     bool    `gorm:"default:false"`

	Languages []ArticleLanguage `gorm:"foreignKey:ArticleCode;references:Code"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
