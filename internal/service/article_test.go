package service

import (
	"context"
	"testing"

	"github.com/emrgen/article/internal/compress"
	"github.com/emrgen/article/internal/model"
	"github.com/emrgen/article/internal/store"
	"github.com/emrgen/article/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestStore() store.Store {
	tester.Setup()
	return store.NewGormStore(tester.TestDB())
}

func createLanguage(t *testing.T, articles *ArticleService, name string) *model.Language {
	t.Helper()
	language, err := articles.CreateLanguage(context.TODO(), name)
	assert.NoError(t, err)
	return language
}

func TestArticleService_CreateArticle(t *testing.T) {
	st := newTestStore()
	articles := NewArticleService(compress.NewNop(), st, nil)
	schemas := NewSchemaService(compress.NewNop(), st, nil)

	english := createLanguage(t, articles, "english")

	article, err := articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "setup guide",
		Type:         "guide",
		LanguageCode: english.Code,
		Sections:     []SectionPayload{{Name: "h", Content: "x"}},
	})
	assert.NoError(t, err)
	assert.NotNil(t, article)

	assert.Equal(t, "setup guide", article.Language.Name)
	assert.Equal(t, english.Code, article.Language.LanguageCode)
	assert.Empty(t, article.AdditionalLanguages)

	// the first version is created actual with a root schema
	version := article.Language.ActualVersion
	assert.NotNil(t, version)
	assert.Equal(t, 1, version.Version)
	assert.True(t, version.Actual)

	schema, err := schemas.GetSchema(context.TODO(), version.SchemaCode, SchemaContext{
		ArticleVersionCode: version.Code,
		LanguageCode:       english.Code,
	})
	assert.NoError(t, err)
	assert.Nil(t, schema.ParentCode)
	assert.False(t, schema.ShouldBeRenovated)
	assert.Len(t, schema.Sections, 1)
	assert.Equal(t, "h", schema.Sections[0].Name)
	assert.Equal(t, "x", schema.Sections[0].Content)
	assert.Equal(t, 0, schema.Sections[0].Order)
}

func TestArticleService_NameMustBeUniquePerLanguage(t *testing.T) {
	st := newTestStore()
	articles := NewArticleService(compress.NewNop(), st, nil)

	english := createLanguage(t, articles, "english")
	german := createLanguage(t, articles, "german")

	_, err := articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "faq",
		Type:         "faq",
		LanguageCode: english.Code,
	})
	assert.NoError(t, err)

	_, err = articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "faq",
		Type:         "faq",
		LanguageCode: english.Code,
	})
	assert.ErrorIs(t, err, ErrNameNotUnique)

	// the same name is free in another language
	_, err = articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "faq",
		Type:         "faq",
		LanguageCode: german.Code,
	})
	assert.NoError(t, err)
}

func TestArticleService_AddArticleLanguage(t *testing.T) {
	st := newTestStore()
	articles := NewArticleService(compress.NewNop(), st, nil)

	english := createLanguage(t, articles, "english")
	german := createLanguage(t, articles, "german")

	article, err := articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "handbook",
		Type:         "guide",
		LanguageCode: english.Code,
		Sections:     []SectionPayload{{Name: "intro", Content: "hello"}},
	})
	assert.NoError(t, err)

	translated, err := articles.AddArticleLanguage(context.TODO(), article.Code, AddLanguageRequest{
		Name:         "handbuch",
		LanguageCode: german.Code,
		Sections:     []SectionPayload{{Name: "intro", Content: "hallo"}},
	})
	assert.NoError(t, err)

	// the requested language is partitioned from the additional ones
	assert.Equal(t, german.Code, translated.Language.LanguageCode)
	assert.Equal(t, "handbuch", translated.Language.Name)
	assert.Equal(t, 1, translated.Language.ActualVersion.Version)
	assert.Len(t, translated.AdditionalLanguages, 1)
	assert.Equal(t, english.Code, translated.AdditionalLanguages[0].LanguageCode)

	_, err = articles.AddArticleLanguage(context.TODO(), article.Code, AddLanguageRequest{
		Name:         "handbuch 2",
		LanguageCode: german.Code,
	})
	assert.ErrorIs(t, err, ErrDuplicateLanguage)
}

func TestArticleService_GetArticleMissingLanguage(t *testing.T) {
	st := newTestStore()
	articles := NewArticleService(compress.NewNop(), st, nil)

	english := createLanguage(t, articles, "english")

	article, err := articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "notes",
		Type:         "note",
		LanguageCode: english.Code,
	})
	assert.NoError(t, err)

	_, err = articles.GetArticle(context.TODO(), article.Code, uuid.New().String())
	assert.ErrorIs(t, err, ErrLanguageShouldExist)
}

func TestArticleService_ListArticles(t *testing.T) {
	st := newTestStore()
	articles := NewArticleService(compress.NewNop(), st, nil)

	english := createLanguage(t, articles, "english")
	german := createLanguage(t, articles, "german")

	category, err := articles.CreateCategory(context.TODO(), "manuals", nil)
	assert.NoError(t, err)

	_, err = articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "printer manual",
		Type:         "manual",
		LanguageCode: english.Code,
		CategoryCode: &category.Code,
	})
	assert.NoError(t, err)

	_, err = articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "drucker handbuch",
		Type:         "manual",
		LanguageCode: german.Code,
	})
	assert.NoError(t, err)

	items, err := articles.ListArticles(context.TODO(), nil, english.Code)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "printer manual", items[0].Name)

	items, err = articles.ListArticles(context.TODO(), &category.Code, german.Code)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestArticleVersionService_GetVersions(t *testing.T) {
	st := newTestStore()
	articles := NewArticleService(compress.NewNop(), st, nil)
	versions := NewArticleVersionService(compress.NewNop(), st, nil)

	english := createLanguage(t, articles, "english")

	article, err := articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "release notes",
		Type:         "note",
		LanguageCode: english.Code,
		Sections:     []SectionPayload{{Name: "v1", Content: "initial"}},
	})
	assert.NoError(t, err)

	got, err := versions.GetArticleVersion(context.TODO(), article.Language.ActualVersion.Code, english.Code)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Len(t, got.Sections, 1)
	assert.Equal(t, "initial", got.Sections[0].Content)

	actual, err := versions.GetActualVersion(context.TODO(), article.Language.Code)
	assert.NoError(t, err)
	assert.Equal(t, got.Code, actual.Code)
	assert.True(t, actual.Actual)
}
