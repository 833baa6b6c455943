package store

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/article/internal/content"
	"github.com/emrgen/article/internal/model"
)

var (
	ErrArticleNotFound         = errors.New("article not found")
	ErrArticleLanguageNotFound = errors.New("article language not found")
	ErrArticleVersionNotFound  = errors.New("article version not found")
	ErrActualVersionNotFound   = errors.New("actual article version not found")
	ErrSchemaNotFound          = errors.New("schema not found")
	ErrLanguageNotFound        = errors.New("language not found")
)

// Write is a single write descriptor. Approval composes several of these and
// submits them to Apply so the whole move commits or nothing does.
type Write func(ctx context.Context, tx Store) error

type Store interface {
	ArticleStore
	ArticleVersionStore
	SchemaStore
	// Transaction runs f against a store bound to one database transaction.
	Transaction(ctx context.Context, f func(tx Store) error) error
	// Apply executes the writes in order inside a single transaction,
	// all-or-nothing.
	Apply(ctx context.Context, writes ...Write) error
	Migrate() error
}

type ArticleStore interface {
	// CreateArticle creates a new article.
	CreateArticle(ctx context.Context, article *model.Article) error
	// GetArticle retrieves an article with its languages and their versions.
	GetArticle(ctx context.Context, code string) (*model.Article, error)
	// ListArticles retrieves articles, optionally filtered by category.
	ListArticles(ctx context.Context, categoryCode *string) ([]*model.Article, error)
	// CreateArticleLanguage creates a language projection of an article.
	CreateArticleLanguage(ctx context.Context, lang *model.ArticleLanguage) error
	// GetArticleLanguage retrieves the projection of an article in a language.
	GetArticleLanguage(ctx context.Context, articleCode, languageCode string) (*model.ArticleLanguage, error)
	// ExistsArticleName reports whether an enabled article language already
	// uses the name within the language.
	ExistsArticleName(ctx context.Context, name, languageCode string) (bool, error)
	// CreateLanguage creates a reference language.
	CreateLanguage(ctx context.Context, language *model.Language) error
	// GetLanguage retrieves a reference language by code.
	GetLanguage(ctx context.Context, code string) (*model.Language, error)
	// CreateCategory creates a category.
	CreateCategory(ctx context.Context, category *model.Category) error
}

type ArticleVersionStore interface {
	// GetArticleVersion retrieves a version by code within a language, with
	// its schema and ordered sections.
	GetArticleVersion(ctx context.Context, code, languageCode string, enabledOnly bool) (*model.ArticleVersion, error)
	// GetActualVersion retrieves the version marked actual for the article
	// language that the given version code belongs to.
	GetActualVersion(ctx context.Context, versionCode, languageCode string) (*model.ArticleVersion, error)
	// GetActualVersionForLanguage retrieves the version marked actual for an
	// article language.
	GetActualVersionForLanguage(ctx context.Context, articleLanguageCode string) (*model.ArticleVersion, error)
	// CreateArticleVersion creates a version snapshot.
	CreateArticleVersion(ctx context.Context, version *model.ArticleVersion) error
	// ClearVersionActualFlag removes the actual marker from a version.
	ClearVersionActualFlag(ctx context.Context, code string) error
	// SetVersionActualFlag puts the actual marker on a version. Callers are
	// responsible for clearing the previous holder in the same transaction.
	SetVersionActualFlag(ctx context.Context, code string) error
	// ArchiveVersionsBefore archives versions that lost the actual marker
	// before the cutoff. Returns the number of versions archived.
	ArchiveVersionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type SchemaStore interface {
	// CreateSchema creates a schema with its sections already linked.
	CreateSchema(ctx context.Context, schema *model.Schema) error
	// GetSchemaWithParent retrieves a schema with its ordered sections, its
	// parent schema's sections and its article version link, if any.
	GetSchemaWithParent(ctx context.Context, code string) (*model.Schema, error)
	// UpdateSchemaSections applies diff groups to the schema's link set and
	// optionally re-anchors the schema to a new parent. Returns the reloaded
	// schema.
	UpdateSchemaSections(ctx context.Context, code string, groups content.UpdateGroups, newParentCode *string) (*model.Schema, error)
	// ClearSchemaParent promotes a schema to a lineage root.
	ClearSchemaParent(ctx context.Context, code string) error
}
