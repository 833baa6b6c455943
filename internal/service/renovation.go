package service

import (
	"context"

	"github.com/emrgen/article/internal/model"
	"github.com/emrgen/article/internal/store"
)

// RenovationStatus is the outcome of a staleness check on a draft schema.
type RenovationStatus struct {
	Needed bool
	// ActualSibling is the version currently marked actual for the draft's
	// article language. Nil when the check short-circuits on a published or
	// root schema.
	ActualSibling *model.ArticleVersion
}

// checkRenovation decides whether a draft schema is stale relative to the
// latest approved content.
//
// A published schema is the actual content and never needs renovation. A root
// draft has no lineage to fall behind. Any other draft is stale exactly when
// the actual sibling's schema differs from the draft's parent. Read-only; a
// missing actual sibling surfaces as store.ErrActualVersionNotFound, which is
// a data-integrity violation.
func checkRenovation(ctx context.Context, s store.Store, schema *model.Schema, sctx SchemaContext) (RenovationStatus, error) {
	if schema.IsPublished() {
		return RenovationStatus{}, nil
	}
	if schema.ParentCode == nil {
		return RenovationStatus{}, nil
	}

	actual, err := s.GetActualVersion(ctx, sctx.ArticleVersionCode, sctx.LanguageCode)
	if err != nil {
		return RenovationStatus{}, err
	}

	return RenovationStatus{
		Needed:        actual.SchemaCode != *schema.ParentCode,
		ActualSibling: actual,
	}, nil
}
