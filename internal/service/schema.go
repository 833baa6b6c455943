package service

import (
	"context"

	"github.com/emrgen/article/internal/cache"
	"github.com/emrgen/article/internal/compress"
	"github.com/emrgen/article/internal/content"
	"github.com/emrgen/article/internal/model"
	"github.com/emrgen/article/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewSchemaService creates a new SchemaService.
func NewSchemaService(compress compress.Compress, store store.Store, cache *cache.VersionCache) *SchemaService {
	return &SchemaService{
		compress: compress,
		store:    store,
		cache:    cache,
	}
}

// SchemaService orchestrates the draft lifecycle: drafting from an article
// version, reconciling section updates, renovating stale drafts and approving
// a draft into a new article version.
type SchemaService struct {
	compress compress.Compress
	store    store.Store
	cache    *cache.VersionCache
}

// CreateDraftSchema branches a new draft off the given article version. The
// sections are created directly; there is no prior draft state to diff
// against. The version being drafted from is not mutated.
func (s *SchemaService) CreateDraftSchema(ctx context.Context, sections []SectionPayload, sctx SchemaContext) (*SchemaProjection, error) {
	current, err := s.store.GetArticleVersion(ctx, sctx.ArticleVersionCode, sctx.LanguageCode, true)
	if err != nil {
		return nil, err
	}
	actual, err := s.store.GetActualVersion(ctx, sctx.ArticleVersionCode, sctx.LanguageCode)
	if err != nil {
		return nil, err
	}

	schema := &model.Schema{
		Code:       uuid.New().String(),
		ParentCode: &current.SchemaCode,
	}
	links, err := buildSections(s.compress, schema.Code, sections)
	if err != nil {
		return nil, err
	}
	schema.Sections = links

	if err := s.store.CreateSchema(ctx, schema); err != nil {
		return nil, err
	}
	logrus.Infof("created draft schema %s from version %d", schema.Code, current.Version)

	if err := decodeSchema(s.compress, schema); err != nil {
		return nil, err
	}

	// drafting from a superseded version starts the draft out stale
	return mapSchema(schema, current.Code != actual.Code), nil
}

// GetSchema retrieves a schema projection with its renovation status.
func (s *SchemaService) GetSchema(ctx context.Context, code string, sctx SchemaContext) (*SchemaProjection, error) {
	schema, err := s.store.GetSchemaWithParent(ctx, code)
	if err != nil {
		return nil, err
	}
	status, err := checkRenovation(ctx, s.store, schema, sctx)
	if err != nil {
		return nil, err
	}
	if err := decodeSchema(s.compress, schema); err != nil {
		return nil, err
	}
	return mapSchema(schema, status.Needed), nil
}

// CheckRenovation reports whether a draft is stale without modifying it.
func (s *SchemaService) CheckRenovation(ctx context.Context, code string, sctx SchemaContext) (bool, error) {
	schema, err := s.store.GetSchemaWithParent(ctx, code)
	if err != nil {
		return false, err
	}
	status, err := checkRenovation(ctx, s.store, schema, sctx)
	if err != nil {
		return false, err
	}
	return status.Needed, nil
}

// UpdateDraftSchema reconciles the incoming sections against the draft's
// stored sections and applies the resulting change groups as a single update.
// Content equal to a section inherited from the parent schema is connected by
// reference. The parent code never changes here.
func (s *SchemaService) UpdateDraftSchema(ctx context.Context, code string, sections []SectionPayload, sctx SchemaContext) (*SchemaProjection, error) {
	schema, err := s.store.GetSchemaWithParent(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := decodeSchema(s.compress, schema); err != nil {
		return nil, err
	}

	existing := flattenLinks(schema.Sections)
	if schema.Parent != nil {
		existing = append(existing, flattenLinks(schema.Parent.Sections)...)
	}

	groups := content.ComputeSectionDiff(code, existing, toIncoming(sections))
	if groups.Empty() {
		status, err := checkRenovation(ctx, s.store, schema, sctx)
		if err != nil {
			return nil, err
		}
		return mapSchema(schema, status.Needed), nil
	}

	if err := encodeCreateOps(s.compress, &groups); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateSchemaSections(ctx, code, groups, nil)
	if err != nil {
		return nil, err
	}
	logrus.Infof("updated schema %s: %d created, %d connected, %d moved, %d deleted",
		code, len(groups.Create), len(groups.Connect), len(groups.Update), len(groups.Delete))

	status, err := checkRenovation(ctx, s.store, updated, sctx)
	if err != nil {
		return nil, err
	}
	if err := decodeSchema(s.compress, updated); err != nil {
		return nil, err
	}
	return mapSchema(updated, status.Needed), nil
}

// RenovateDraftSchema re-anchors a stale draft to the actual sibling's schema
// and reconciles the incoming sections against both the draft's own content
// and the new parent's content. Fails when the draft is already current.
func (s *SchemaService) RenovateDraftSchema(ctx context.Context, code string, sections []SectionPayload, sctx SchemaContext) (*SchemaProjection, error) {
	schema, err := s.store.GetSchemaWithParent(ctx, code)
	if err != nil {
		return nil, err
	}

	status, err := checkRenovation(ctx, s.store, schema, sctx)
	if err != nil {
		return nil, err
	}
	if !status.Needed {
		return nil, ErrAlreadyActualSchema
	}

	if err := decodeSchema(s.compress, schema); err != nil {
		return nil, err
	}

	existing := flattenLinks(schema.Sections)
	if status.ActualSibling.Schema != nil {
		if err := decodeLinks(s.compress, status.ActualSibling.Schema.Sections); err != nil {
			return nil, err
		}
		existing = append(existing, flattenLinks(status.ActualSibling.Schema.Sections)...)
	}

	groups := content.ComputeSectionDiff(code, existing, toIncoming(sections))
	if err := encodeCreateOps(s.compress, &groups); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateSchemaSections(ctx, code, groups, &status.ActualSibling.SchemaCode)
	if err != nil {
		return nil, err
	}
	logrus.Infof("renovated schema %s onto schema %s", code, status.ActualSibling.SchemaCode)

	if err := decodeSchema(s.compress, updated); err != nil {
		return nil, err
	}

	// re-anchoring makes the draft current by construction
	return mapSchema(updated, false), nil
}

// ApproveDraft promotes a draft into the next article version. The schema
// must be a non-root draft anchored to the version being superseded; a stale
// draft is rejected the same way a root schema is.
func (s *SchemaService) ApproveDraft(ctx context.Context, code string, sctx SchemaContext) (*VersionProjection, error) {
	parent, err := s.store.GetArticleVersion(ctx, sctx.ArticleVersionCode, sctx.LanguageCode, true)
	if err != nil {
		return nil, err
	}
	schema, err := s.store.GetSchemaWithParent(ctx, code)
	if err != nil {
		return nil, err
	}

	if schema.ParentCode == nil || *schema.ParentCode != parent.SchemaCode {
		return nil, ErrAlreadyApprovedSchema
	}

	// the new version is intentionally not promoted to actual; promotion is
	// a separate step
	created := &model.ArticleVersion{
		Code:                uuid.New().String(),
		Version:             parent.Version + 1,
		ArticleLanguageCode: parent.ArticleLanguageCode,
		SchemaCode:          code,
		Enabled:             true,
	}

	// the three writes commit together or not at all; a partially approved
	// draft would leave the language without an authoritative lineage
	err = s.store.Apply(ctx,
		func(ctx context.Context, tx store.Store) error {
			return tx.ClearSchemaParent(ctx, code)
		},
		func(ctx context.Context, tx store.Store) error {
			return tx.ClearVersionActualFlag(ctx, parent.Code)
		},
		func(ctx context.Context, tx store.Store) error {
			return tx.CreateArticleVersion(ctx, created)
		},
	)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateActualVersion(ctx, parent.ArticleLanguageCode); err != nil {
		logrus.Errorf("error invalidating actual version cache: %v", err)
	}
	if err := s.cache.InvalidateVersion(ctx, parent.Code); err != nil {
		logrus.Errorf("error invalidating version cache: %v", err)
	}

	logrus.Infof("approved schema %s into version %d", code, created.Version)

	version, err := s.store.GetArticleVersion(ctx, created.Code, sctx.LanguageCode, false)
	if err != nil {
		return nil, err
	}
	if version.Schema != nil {
		if err := decodeLinks(s.compress, version.Schema.Sections); err != nil {
			return nil, err
		}
	}
	return mapVersion(version), nil
}

// buildSections turns incoming payloads into linked model sections with
// content encoded at rest.
func buildSections(enc compress.Compress, schemaCode string, payloads []SectionPayload) ([]model.SchemaSection, error) {
	links := make([]model.SchemaSection, 0, len(payloads))
	for order, payload := range payloads {
		data, err := enc.Encode([]byte(payload.Content))
		if err != nil {
			return nil, err
		}
		section := model.Section{
			Code:    uuid.New().String(),
			Name:    payload.Name,
			Content: string(data),
		}
		links = append(links, model.SchemaSection{
			Code:        uuid.New().String(),
			SchemaCode:  schemaCode,
			SectionCode: section.Code,
			Order:       order,
			Section:     section,
		})
	}
	return links, nil
}

// decodeLinks rewrites encoded section content to plain text in place.
func decodeLinks(enc compress.Compress, links []model.SchemaSection) error {
	for i := range links {
		data, err := enc.Decode([]byte(links[i].Section.Content))
		if err != nil {
			return err
		}
		links[i].Section.Content = string(data)
	}
	return nil
}

func decodeSchema(enc compress.Compress, schema *model.Schema) error {
	if err := decodeLinks(enc, schema.Sections); err != nil {
		return err
	}
	if schema.Parent != nil {
		return decodeLinks(enc, schema.Parent.Sections)
	}
	return nil
}

// encodeCreateOps encodes the content of sections about to be created.
func encodeCreateOps(enc compress.Compress, groups *content.UpdateGroups) error {
	for i := range groups.Create {
		data, err := enc.Encode([]byte(groups.Create[i].Content))
		if err != nil {
			return err
		}
		groups.Create[i].Content = string(data)
	}
	return nil
}

func flattenLinks(links []model.SchemaSection) []content.LinkedSection {
	out := make([]content.LinkedSection, 0, len(links))
	for _, link := range links {
		out = append(out, content.LinkedSection{
			LinkCode:    link.Code,
			SchemaCode:  link.SchemaCode,
			SectionCode: link.SectionCode,
			Name:        link.Section.Name,
			Content:     link.Section.Content,
			Order:       link.Order,
		})
	}
	return out
}

func toIncoming(payloads []SectionPayload) []content.Section {
	sections := make([]content.Section, 0, len(payloads))
	for _, payload := range payloads {
		sections = append(sections, content.Section{
			Name:    payload.Name,
			Content: payload.Content,
		})
	}
	return sections
}
