package model

import (
	"time"

	"gorm.io/gorm"
)

// ArticleLanguage is the language-specific projection of an article. Each
// enabled language owns a chain of article versions, exactly one of which is
// marked actual at any time.
type ArticleLanguage struct {
	Code         string `gorm:"primaryKey;uuid;not null"`
	Name         string `gorm:"not null;index"`
	ArticleCode  string `gorm:"uuid;not null;index"`
	LanguageCode string `gorm:"uuid;not null;index"`
	Enabled      bool   `gorm:"default:true"`
	Archived     bool   `gorm:"default:false"`

	Versions []ArticleVersion `gorm:"foreignKey:ArticleLanguageCode;references:Code"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
