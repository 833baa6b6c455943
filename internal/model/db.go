package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Language{},
		&Category{},
		&Article{},
		&ArticleLanguage{},
		&ArticleVersion{},
		&Schema{},
		&SchemaSection{},
		&Section{},
	)
}
