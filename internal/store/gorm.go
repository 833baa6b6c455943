package store

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/article/internal/content"
	"github.com/emrgen/article/internal/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func sectionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_index asc")
}

func (g *GormStore) CreateArticle(ctx context.Context, article *model.Article) error {
	return g.db.WithContext(ctx).Create(article).Error
}

func (g *GormStore) GetArticle(ctx context.Context, code string) (*model.Article, error) {
	var article model.Article
	err := g.db.WithContext(ctx).
		Preload("Languages").
		Preload("Languages.Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version asc")
		}).
		Where("code = ?", code).
		First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (g *GormStore) ListArticles(ctx context.Context, categoryCode *string) ([]*model.Article, error) {
	var articles []*model.Article
	query := g.db.WithContext(ctx).Preload("Languages")
	if categoryCode != nil {
		query = query.Where("category_code = ?", *categoryCode)
	}
	err := query.Where("archived = ?", false).Find(&articles).Error
	return articles, err
}

func (g *GormStore) CreateArticleLanguage(ctx context.Context, lang *model.ArticleLanguage) error {
	return g.db.WithContext(ctx).Create(lang).Error
}

func (g *GormStore) GetArticleLanguage(ctx context.Context, articleCode, languageCode string) (*model.ArticleLanguage, error) {
	var lang model.ArticleLanguage
	err := g.db.WithContext(ctx).
		Where("article_code = ? AND language_code = ?", articleCode, languageCode).
		First(&lang).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleLanguageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

func (g *GormStore) ExistsArticleName(ctx context.Context, name, languageCode string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.ArticleLanguage{}).
		Where("name = ? AND language_code = ? AND enabled = ?", name, languageCode, true).
		Count(&count).Error
	return count > 0, err
}

func (g *GormStore) CreateLanguage(ctx context.Context, language *model.Language) error {
	return g.db.WithContext(ctx).Create(language).Error
}

func (g *GormStore) GetLanguage(ctx context.Context, code string) (*model.Language, error) {
	var language model.Language
	err := g.db.WithContext(ctx).Where("code = ?", code).First(&language).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLanguageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func (g *GormStore) CreateCategory(ctx context.Context, category *model.Category) error {
	return g.db.WithContext(ctx).Create(category).Error
}

func (g *GormStore) GetArticleVersion(ctx context.Context, code, languageCode string, enabledOnly bool) (*model.ArticleVersion, error) {
	var version model.ArticleVersion
	query := g.db.WithContext(ctx).
		Preload("Schema.Sections", sectionOrder).
		Preload("Schema.Sections.Section").
		Where("code = ?", code).
		Where("article_language_code IN (?)",
			g.db.Model(&model.ArticleLanguage{}).Select("code").Where("language_code = ?", languageCode))
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	err := query.First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// GetActualVersion resolves the sibling version marked actual for the article
// language that versionCode belongs to.
func (g *GormStore) GetActualVersion(ctx context.Context, versionCode, languageCode string) (*model.ArticleVersion, error) {
	var sibling model.ArticleVersion
	err := g.db.WithContext(ctx).
		Preload("Schema.Sections", sectionOrder).
		Preload("Schema.Sections.Section").
		Where("actual = ? AND archived = ?", true, false).
		Where("article_language_code IN (?)",
			g.db.Model(&model.ArticleVersion{}).Select("article_language_code").Where("code = ?", versionCode)).
		Where("article_language_code IN (?)",
			g.db.Model(&model.ArticleLanguage{}).Select("code").Where("language_code = ?", languageCode)).
		First(&sibling).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActualVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sibling, nil
}

func (g *GormStore) GetActualVersionForLanguage(ctx context.Context, articleLanguageCode string) (*model.ArticleVersion, error) {
	var version model.ArticleVersion
	err := g.db.WithContext(ctx).
		Preload("Schema.Sections", sectionOrder).
		Preload("Schema.Sections.Section").
		Where("article_language_code = ? AND actual = ? AND archived = ?", articleLanguageCode, true, false).
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActualVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (g *GormStore) CreateArticleVersion(ctx context.Context, version *model.ArticleVersion) error {
	return g.db.WithContext(ctx).Create(version).Error
}

func (g *GormStore) ClearVersionActualFlag(ctx context.Context, code string) error {
	return g.db.WithContext(ctx).Model(&model.ArticleVersion{}).
		Where("code = ?", code).
		Update("actual", nil).Error
}

func (g *GormStore) SetVersionActualFlag(ctx context.Context, code string) error {
	return g.db.WithContext(ctx).Model(&model.ArticleVersion{}).
		Where("code = ?", code).
		Update("actual", true).Error
}

func (g *GormStore) ArchiveVersionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := g.db.WithContext(ctx).Model(&model.ArticleVersion{}).
		Where("actual IS NULL AND archived = ?", false).
		Where("updated_at < ?", cutoff).
		Where("version < (SELECT MAX(v.version) FROM article_versions v WHERE v.article_language_code = article_versions.article_language_code)").
		Update("archived", true)
	return res.RowsAffected, res.Error
}

func (g *GormStore) CreateSchema(ctx context.Context, schema *model.Schema) error {
	return g.db.WithContext(ctx).Create(schema).Error
}

func (g *GormStore) GetSchemaWithParent(ctx context.Context, code string) (*model.Schema, error) {
	var schema model.Schema
	err := g.db.WithContext(ctx).
		Preload("Sections", sectionOrder).
		Preload("Sections.Section").
		Preload("Parent.Sections", sectionOrder).
		Preload("Parent.Sections.Section").
		Preload("ArticleVersion").
		Where("code = ?", code).
		First(&schema).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSchemaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schema, nil
}

// UpdateSchemaSections applies the diff groups to the schema's link set. The
// groups are applied inside one transaction; the schema is reloaded after.
func (g *GormStore) UpdateSchemaSections(ctx context.Context, code string, groups content.UpdateGroups, newParentCode *string) (*model.Schema, error) {
	err := g.Transaction(ctx, func(tx Store) error {
		db := tx.(*GormStore).db.WithContext(ctx)

		for _, op := range groups.Delete {
			err := db.Where("code = ? AND schema_code = ?", op.LinkCode, code).
				Delete(&model.SchemaSection{}).Error
			if err != nil {
				return err
			}
		}

		for _, op := range groups.Update {
			err := db.Model(&model.SchemaSection{}).
				Where("code = ? AND schema_code = ?", op.LinkCode, code).
				Update("order_index", op.Order).Error
			if err != nil {
				return err
			}
		}

		for _, op := range groups.Connect {
			link := &model.SchemaSection{
				Code:        uuid.New().String(),
				SchemaCode:  code,
				SectionCode: op.SectionCode,
				Order:       op.Order,
			}
			if err := db.Create(link).Error; err != nil {
				return err
			}
		}

		for _, op := range groups.Create {
			section := &model.Section{
				Code:    uuid.New().String(),
				Name:    op.Name,
				Content: op.Content,
			}
			if err := db.Create(section).Error; err != nil {
				return err
			}
			link := &model.SchemaSection{
				Code:        uuid.New().String(),
				SchemaCode:  code,
				SectionCode: section.Code,
				Order:       op.Order,
			}
			if err := db.Create(link).Error; err != nil {
				return err
			}
		}

		if newParentCode != nil {
			err := db.Model(&model.Schema{}).
				Where("code = ?", code).
				Update("parent_code", *newParentCode).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return g.GetSchemaWithParent(ctx, code)
}

func (g *GormStore) ClearSchemaParent(ctx context.Context, code string) error {
	return g.db.WithContext(ctx).Model(&model.Schema{}).
		Where("code = ?", code).
		Update("parent_code", nil).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

func (g *GormStore) Apply(ctx context.Context, writes ...Write) error {
	logrus.Debugf("applying %d writes in one transaction", len(writes))
	return g.Transaction(ctx, func(tx Store) error {
		for _, write := range writes {
			if err := write(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
}
