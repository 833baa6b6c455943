package service

import (
	"context"
	"testing"

	"github.com/emrgen/article/internal/compress"
	"github.com/emrgen/article/internal/store"
	"github.com/stretchr/testify/assert"
)

type schemaFixture struct {
	store    store.Store
	articles *ArticleService
	schemas  *SchemaService
	versions *ArticleVersionService

	article      *ArticleProjection
	languageCode string
}

// seedSchemaFixture resets the database and creates one article in english
// with a single section, leaving version 1 actual.
func seedSchemaFixture(t *testing.T, sections ...SectionPayload) *schemaFixture {
	t.Helper()

	st := newTestStore()
	f := &schemaFixture{
		store:    st,
		articles: NewArticleService(compress.NewNop(), st, nil),
		schemas:  NewSchemaService(compress.NewNop(), st, nil),
		versions: NewArticleVersionService(compress.NewNop(), st, nil),
	}

	english := createLanguage(t, f.articles, "english")
	f.languageCode = english.Code

	if len(sections) == 0 {
		sections = []SectionPayload{{Name: "h", Content: "x"}}
	}
	article, err := f.articles.CreateArticle(context.TODO(), CreateArticleRequest{
		Name:         "schema lifecycle",
		Type:         "guide",
		LanguageCode: english.Code,
		Sections:     sections,
	})
	assert.NoError(t, err)
	f.article = article

	return f
}

func (f *schemaFixture) sctx() SchemaContext {
	return SchemaContext{
		ArticleVersionCode: f.article.Language.ActualVersion.Code,
		LanguageCode:       f.languageCode,
	}
}

func TestSchemaService_CreateDraftSchema(t *testing.T) {
	f := seedSchemaFixture(t)
	v1 := f.article.Language.ActualVersion

	draft, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "a", Content: "1"},
		{Name: "b", Content: "2"},
	}, f.sctx())
	assert.NoError(t, err)

	// the draft branches off the version's schema, not the version itself
	assert.NotNil(t, draft.ParentCode)
	assert.Equal(t, v1.SchemaCode, *draft.ParentCode)
	assert.False(t, draft.ShouldBeRenovated)
	assert.Len(t, draft.Sections, 2)
	assert.Equal(t, "a", draft.Sections[0].Name)
	assert.Equal(t, 0, draft.Sections[0].Order)
	assert.Equal(t, "b", draft.Sections[1].Name)
	assert.Equal(t, 1, draft.Sections[1].Order)

	needed, err := f.schemas.CheckRenovation(context.TODO(), draft.Code, f.sctx())
	assert.NoError(t, err)
	assert.False(t, needed)

	// the drafted-from version is untouched
	got, err := f.versions.GetArticleVersion(context.TODO(), v1.Code, f.languageCode)
	assert.NoError(t, err)
	assert.True(t, got.Actual)
	assert.Len(t, got.Sections, 1)
}

func TestSchemaService_CreateDraftFromSupersededVersion(t *testing.T) {
	f := seedSchemaFixture(t)
	v1 := f.article.Language.ActualVersion

	other, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "n", Content: "new"},
	}, f.sctx())
	assert.NoError(t, err)

	approved, err := f.schemas.ApproveDraft(context.TODO(), other.Code, f.sctx())
	assert.NoError(t, err)
	_, err = f.versions.PromoteVersion(context.TODO(), approved.Code, f.languageCode)
	assert.NoError(t, err)

	// branching off the superseded version starts the draft out stale
	draft, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "late", Content: "draft"},
	}, SchemaContext{ArticleVersionCode: v1.Code, LanguageCode: f.languageCode})
	assert.NoError(t, err)
	assert.Equal(t, v1.SchemaCode, *draft.ParentCode)
	assert.True(t, draft.ShouldBeRenovated)
}

func TestSchemaService_UpdateDraftSchema(t *testing.T) {
	f := seedSchemaFixture(t, SectionPayload{Name: "h", Content: "x"})
	v1 := f.article.Language.ActualVersion

	parent, err := f.versions.GetArticleVersion(context.TODO(), v1.Code, f.languageCode)
	assert.NoError(t, err)
	parentSection := parent.Sections[0]

	draft, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "a", Content: "1"},
		{Name: "b", Content: "2"},
	}, f.sctx())
	assert.NoError(t, err)
	keptCode := draft.Sections[1].Code

	updated, err := f.schemas.UpdateDraftSchema(context.TODO(), draft.Code, []SectionPayload{
		{Name: "b", Content: "2"},
		{Name: "h", Content: "x"},
		{Name: "c", Content: "3"},
	}, f.sctx())
	assert.NoError(t, err)
	assert.Len(t, updated.Sections, 3)

	// content-equal to a stored section keeps its identity, only the order moves
	assert.Equal(t, keptCode, updated.Sections[0].Code)
	assert.Equal(t, "b", updated.Sections[0].Name)

	// content-equal to a parent section connects by reference
	assert.Equal(t, parentSection.Code, updated.Sections[1].Code)
	assert.Equal(t, "x", updated.Sections[1].Content)

	// the rest is created fresh
	assert.Equal(t, "c", updated.Sections[2].Name)
	assert.Equal(t, "3", updated.Sections[2].Content)
	assert.Equal(t, 2, updated.Sections[2].Order)

	// "a" matched nothing incoming and is gone
	for _, section := range updated.Sections {
		assert.NotEqual(t, "a", section.Name)
	}

	// the parent code never changes on update
	assert.Equal(t, v1.SchemaCode, *updated.ParentCode)
}

func TestSchemaService_UpdateDraftSchemaNoChanges(t *testing.T) {
	f := seedSchemaFixture(t)

	draft, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "a", Content: "1"},
		{Name: "b", Content: "2"},
	}, f.sctx())
	assert.NoError(t, err)

	updated, err := f.schemas.UpdateDraftSchema(context.TODO(), draft.Code, []SectionPayload{
		{Name: "a", Content: "1"},
		{Name: "b", Content: "2"},
	}, f.sctx())
	assert.NoError(t, err)

	assert.Equal(t, draft.Sections[0].Code, updated.Sections[0].Code)
	assert.Equal(t, draft.Sections[1].Code, updated.Sections[1].Code)
}

func TestSchemaService_RenovateDraftSchema(t *testing.T) {
	f := seedSchemaFixture(t)
	v1 := f.article.Language.ActualVersion

	draft, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "d1", Content: "c1"},
	}, f.sctx())
	assert.NoError(t, err)

	// renovating a current draft is rejected
	_, err = f.schemas.RenovateDraftSchema(context.TODO(), draft.Code, nil, f.sctx())
	assert.ErrorIs(t, err, ErrAlreadyActualSchema)

	// a sibling draft gets approved and promoted, leaving the first draft
	// anchored to a superseded schema
	sibling, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "d2", Content: "c2"},
	}, f.sctx())
	assert.NoError(t, err)
	siblingSection := sibling.Sections[0]

	approved, err := f.schemas.ApproveDraft(context.TODO(), sibling.Code, f.sctx())
	assert.NoError(t, err)
	_, err = f.versions.PromoteVersion(context.TODO(), approved.Code, f.languageCode)
	assert.NoError(t, err)

	needed, err := f.schemas.CheckRenovation(context.TODO(), draft.Code,
		SchemaContext{ArticleVersionCode: v1.Code, LanguageCode: f.languageCode})
	assert.NoError(t, err)
	assert.True(t, needed)

	renovated, err := f.schemas.RenovateDraftSchema(context.TODO(), draft.Code, []SectionPayload{
		{Name: "d1", Content: "c1"},
		{Name: "d2", Content: "c2"},
	}, SchemaContext{ArticleVersionCode: v1.Code, LanguageCode: f.languageCode})
	assert.NoError(t, err)

	// the draft is re-anchored to the actual sibling's schema
	assert.Equal(t, approved.SchemaCode, *renovated.ParentCode)
	assert.False(t, renovated.ShouldBeRenovated)
	assert.Len(t, renovated.Sections, 2)

	// content shared with the new parent connects instead of duplicating
	assert.Equal(t, siblingSection.Code, renovated.Sections[1].Code)

	needed, err = f.schemas.CheckRenovation(context.TODO(), draft.Code,
		SchemaContext{ArticleVersionCode: v1.Code, LanguageCode: f.languageCode})
	assert.NoError(t, err)
	assert.False(t, needed)

	_, err = f.schemas.RenovateDraftSchema(context.TODO(), draft.Code, nil,
		SchemaContext{ArticleVersionCode: v1.Code, LanguageCode: f.languageCode})
	assert.ErrorIs(t, err, ErrAlreadyActualSchema)
}

func TestSchemaService_ApproveDraft(t *testing.T) {
	f := seedSchemaFixture(t)
	v1 := f.article.Language.ActualVersion
	langCode := f.article.Language.Code

	draft, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "next", Content: "content"},
	}, f.sctx())
	assert.NoError(t, err)

	approved, err := f.schemas.ApproveDraft(context.TODO(), draft.Code, f.sctx())
	assert.NoError(t, err)

	assert.Equal(t, 2, approved.Version)
	assert.Equal(t, draft.Code, approved.SchemaCode)
	assert.Len(t, approved.Sections, 1)
	assert.Equal(t, "content", approved.Sections[0].Content)

	// approval does not promote; the language has no actual version until the
	// new one is promoted explicitly
	assert.False(t, approved.Actual)
	_, err = f.versions.GetActualVersion(context.TODO(), langCode)
	assert.ErrorIs(t, err, store.ErrActualVersionNotFound)

	// the approved schema is detached from its parent and published
	published, err := f.schemas.GetSchema(context.TODO(), draft.Code,
		SchemaContext{ArticleVersionCode: v1.Code, LanguageCode: f.languageCode})
	assert.NoError(t, err)
	assert.Nil(t, published.ParentCode)
	assert.False(t, published.ShouldBeRenovated)

	promoted, err := f.versions.PromoteVersion(context.TODO(), approved.Code, f.languageCode)
	assert.NoError(t, err)
	assert.True(t, promoted.Actual)

	actual, err := f.versions.GetActualVersion(context.TODO(), langCode)
	assert.NoError(t, err)
	assert.Equal(t, approved.Code, actual.Code)

	// promoting the actual version again is a no-op
	again, err := f.versions.PromoteVersion(context.TODO(), approved.Code, f.languageCode)
	assert.NoError(t, err)
	assert.True(t, again.Actual)
}

func TestSchemaService_ApproveRootSchemaRejected(t *testing.T) {
	f := seedSchemaFixture(t)
	v1 := f.article.Language.ActualVersion

	_, err := f.schemas.ApproveDraft(context.TODO(), v1.SchemaCode, f.sctx())
	assert.ErrorIs(t, err, ErrAlreadyApprovedSchema)
}

func TestSchemaService_ApproveStaleDraftRejected(t *testing.T) {
	f := seedSchemaFixture(t)
	v1 := f.article.Language.ActualVersion
	langCode := f.article.Language.Code

	stale, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "left", Content: "behind"},
	}, f.sctx())
	assert.NoError(t, err)

	sibling, err := f.schemas.CreateDraftSchema(context.TODO(), []SectionPayload{
		{Name: "won", Content: "race"},
	}, f.sctx())
	assert.NoError(t, err)

	approved, err := f.schemas.ApproveDraft(context.TODO(), sibling.Code, f.sctx())
	assert.NoError(t, err)
	_, err = f.versions.PromoteVersion(context.TODO(), approved.Code, f.languageCode)
	assert.NoError(t, err)

	_, err = f.schemas.ApproveDraft(context.TODO(), stale.Code,
		SchemaContext{ArticleVersionCode: approved.Code, LanguageCode: f.languageCode})
	assert.ErrorIs(t, err, ErrAlreadyApprovedSchema)

	// the rejection leaves no trace: the stale draft keeps its anchor and the
	// actual version does not move
	kept, err := f.schemas.GetSchema(context.TODO(), stale.Code,
		SchemaContext{ArticleVersionCode: v1.Code, LanguageCode: f.languageCode})
	assert.NoError(t, err)
	assert.Equal(t, v1.SchemaCode, *kept.ParentCode)

	actual, err := f.versions.GetActualVersion(context.TODO(), langCode)
	assert.NoError(t, err)
	assert.Equal(t, approved.Code, actual.Code)
}
