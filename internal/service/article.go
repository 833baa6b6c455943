package service

import (
	"context"
	"errors"

	"github.com/emrgen/article/internal/cache"
	"github.com/emrgen/article/internal/compress"
	"github.com/emrgen/article/internal/model"
	"github.com/emrgen/article/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewArticleService creates a new ArticleService.
func NewArticleService(compress compress.Compress, store store.Store, cache *cache.VersionCache) *ArticleService {
	return &ArticleService{
		compress: compress,
		store:    store,
		cache:    cache,
	}
}

// ArticleService manages articles and their language projections.
type ArticleService struct {
	compress compress.Compress
	store    store.Store
	cache    *cache.VersionCache
}

// CreateArticleRequest carries everything needed to create an article in its
// first language.
type CreateArticleRequest struct {
	Name         string
	Type         string
	LanguageCode string
	CategoryCode *string
	Sections     []SectionPayload
}

// AddLanguageRequest adds a language projection to an existing article.
type AddLanguageRequest struct {
	Name         string
	LanguageCode string
	Sections     []SectionPayload
}

// ArticleListItem is the shape of one article in a listing.
type ArticleListItem struct {
	Code string
	Type string
	Name string
}

// CreateArticle creates an article together with its first language, a root
// schema holding the given sections and version 1 marked actual. The four
// writes commit together.
func (a *ArticleService) CreateArticle(ctx context.Context, req CreateArticleRequest) (*ArticleProjection, error) {
	if _, err := a.store.GetLanguage(ctx, req.LanguageCode); err != nil {
		return nil, err
	}

	exists, err := a.store.ExistsArticleName(ctx, req.Name, req.LanguageCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameNotUnique
	}

	article := &model.Article{
		Code:         uuid.New().String(),
		Type:         req.Type,
		CategoryCode: req.CategoryCode,
		Enabled:      true,
	}
	lang := &model.ArticleLanguage{
		Code:         uuid.New().String(),
		Name:         req.Name,
		ArticleCode:  article.Code,
		LanguageCode: req.LanguageCode,
		Enabled:      true,
	}

	schema := &model.Schema{Code: uuid.New().String()}
	links, err := buildSections(a.compress, schema.Code, req.Sections)
	if err != nil {
		return nil, err
	}
	schema.Sections = links

	version := &model.ArticleVersion{
		Code:                uuid.New().String(),
		Version:             1,
		ArticleLanguageCode: lang.Code,
		SchemaCode:          schema.Code,
		Actual:              model.MarkActual(),
		Enabled:             true,
	}

	err = a.store.Apply(ctx,
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateArticle(ctx, article)
		},
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateArticleLanguage(ctx, lang)
		},
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateSchema(ctx, schema)
		},
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateArticleVersion(ctx, version)
		},
	)
	if err != nil {
		return nil, err
	}
	logrus.Infof("created article %s in language %s", article.Code, req.LanguageCode)

	return a.GetArticle(ctx, article.Code, req.LanguageCode)
}

// GetArticle retrieves an article projected onto the requested language.
func (a *ArticleService) GetArticle(ctx context.Context, code, languageCode string) (*ArticleProjection, error) {
	article, err := a.store.GetArticle(ctx, code)
	if err != nil {
		return nil, err
	}
	return mapArticle(article, languageCode)
}

// AddArticleLanguage adds a language projection to an article: a new article
// language, its own root schema and version 1 marked actual. Each language
// owns an independent version lineage.
func (a *ArticleService) AddArticleLanguage(ctx context.Context, articleCode string, req AddLanguageRequest) (*ArticleProjection, error) {
	if _, err := a.store.GetLanguage(ctx, req.LanguageCode); err != nil {
		return nil, err
	}
	if _, err := a.store.GetArticle(ctx, articleCode); err != nil {
		return nil, err
	}

	_, err := a.store.GetArticleLanguage(ctx, articleCode, req.LanguageCode)
	if err == nil {
		return nil, ErrDuplicateLanguage
	}
	if !errors.Is(err, store.ErrArticleLanguageNotFound) {
		return nil, err
	}

	exists, err := a.store.ExistsArticleName(ctx, req.Name, req.LanguageCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameNotUnique
	}

	lang := &model.ArticleLanguage{
		Code:         uuid.New().String(),
		Name:         req.Name,
		ArticleCode:  articleCode,
		LanguageCode: req.LanguageCode,
		Enabled:      true,
	}

	schema := &model.Schema{Code: uuid.New().String()}
	links, err := buildSections(a.compress, schema.Code, req.Sections)
	if err != nil {
		return nil, err
	}
	schema.Sections = links

	version := &model.ArticleVersion{
		Code:                uuid.New().String(),
		Version:             1,
		ArticleLanguageCode: lang.Code,
		SchemaCode:          schema.Code,
		Actual:              model.MarkActual(),
		Enabled:             true,
	}

	err = a.store.Apply(ctx,
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateArticleLanguage(ctx, lang)
		},
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateSchema(ctx, schema)
		},
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateArticleVersion(ctx, version)
		},
	)
	if err != nil {
		return nil, err
	}
	logrus.Infof("added language %s to article %s", req.LanguageCode, articleCode)

	return a.GetArticle(ctx, articleCode, req.LanguageCode)
}

// ListArticles lists articles in the requested language, optionally filtered
// by category. Articles without the language are skipped.
func (a *ArticleService) ListArticles(ctx context.Context, categoryCode *string, languageCode string) ([]ArticleListItem, error) {
	articles, err := a.store.ListArticles(ctx, categoryCode)
	if err != nil {
		return nil, err
	}

	items := make([]ArticleListItem, 0, len(articles))
	for _, article := range articles {
		for _, lang := range article.Languages {
			if lang.LanguageCode != languageCode || !lang.Enabled {
				continue
			}
			items = append(items, ArticleListItem{
				Code: article.Code,
				Type: article.Type,
				Name: lang.Name,
			})
			break
		}
	}
	return items, nil
}

// CreateLanguage creates a reference language.
func (a *ArticleService) CreateLanguage(ctx context.Context, name string) (*model.Language, error) {
	language := &model.Language{
		Code: uuid.New().String(),
		Name: name,
	}
	if err := a.store.CreateLanguage(ctx, language); err != nil {
		return nil, err
	}
	return language, nil
}

// CreateCategory creates a category.
func (a *ArticleService) CreateCategory(ctx context.Context, name string, parentCode *string) (*model.Category, error) {
	category := &model.Category{
		Code:       uuid.New().String(),
		Name:       name,
		ParentCode: parentCode,
	}
	if err := a.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
