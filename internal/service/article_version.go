package service

import (
	"context"
	"errors"

	"github.com/emrgen/article/internal/cache"
	"github.com/emrgen/article/internal/compress"
	"github.com/emrgen/article/internal/store"
	"github.com/sirupsen/logrus"
)

// NewArticleVersionService creates a new ArticleVersionService.
func NewArticleVersionService(compress compress.Compress, store store.Store, cache *cache.VersionCache) *ArticleVersionService {
	return &ArticleVersionService{
		compress: compress,
		store:    store,
		cache:    cache,
	}
}

// ArticleVersionService reads version snapshots. Snapshots are immutable so
// reads go through the version cache; cache failures fall back to the store
// and never fail a request.
type ArticleVersionService struct {
	compress compress.Compress
	store    store.Store
	cache    *cache.VersionCache
}

// GetArticleVersion retrieves an enabled version with its schema sections.
func (v *ArticleVersionService) GetArticleVersion(ctx context.Context, code, languageCode string) (*VersionProjection, error) {
	var cached VersionProjection
	if err := v.cache.GetVersion(ctx, code, &cached); err == nil {
		return &cached, nil
	}

	version, err := v.store.GetArticleVersion(ctx, code, languageCode, true)
	if err != nil {
		return nil, err
	}
	if version.Schema != nil {
		if err := decodeLinks(v.compress, version.Schema.Sections); err != nil {
			return nil, err
		}
	}

	projection := mapVersion(version)
	if err := v.cache.SetVersion(ctx, code, projection); err != nil {
		logrus.Errorf("error caching version %s: %v", code, err)
	}
	return projection, nil
}

// PromoteVersion marks a version actual for its language, clearing the
// marker from the previous holder. Approval leaves a fresh version unmarked,
// so promotion is the explicit second step that moves the authoritative
// pointer. Both writes commit together, keeping the at-most-one-actual
// invariant observable at every point.
func (v *ArticleVersionService) PromoteVersion(ctx context.Context, code, languageCode string) (*VersionProjection, error) {
	version, err := v.store.GetArticleVersion(ctx, code, languageCode, true)
	if err != nil {
		return nil, err
	}
	if version.IsActual() {
		if version.Schema != nil {
			if err := decodeLinks(v.compress, version.Schema.Sections); err != nil {
				return nil, err
			}
		}
		return mapVersion(version), nil
	}

	var writes []store.Write
	previous, err := v.store.GetActualVersionForLanguage(ctx, version.ArticleLanguageCode)
	switch {
	case err == nil:
		writes = append(writes, func(ctx context.Context, tx store.Store) error {
			return tx.ClearVersionActualFlag(ctx, previous.Code)
		})
	case !errors.Is(err, store.ErrActualVersionNotFound):
		return nil, err
	}
	writes = append(writes, func(ctx context.Context, tx store.Store) error {
		return tx.SetVersionActualFlag(ctx, code)
	})

	if err := v.store.Apply(ctx, writes...); err != nil {
		return nil, err
	}
	if err := v.cache.InvalidateActualVersion(ctx, version.ArticleLanguageCode); err != nil {
		logrus.Errorf("error invalidating actual version cache: %v", err)
	}
	if err := v.cache.InvalidateVersion(ctx, code); err != nil {
		logrus.Errorf("error invalidating version cache: %v", err)
	}
	if previous != nil {
		if err := v.cache.InvalidateVersion(ctx, previous.Code); err != nil {
			logrus.Errorf("error invalidating version cache: %v", err)
		}
	}
	logrus.Infof("promoted version %d to actual for language %s", version.Version, version.ArticleLanguageCode)

	return v.GetArticleVersion(ctx, code, languageCode)
}

// GetActualVersion retrieves the version currently marked actual for an
// article language.
func (v *ArticleVersionService) GetActualVersion(ctx context.Context, articleLanguageCode string) (*VersionProjection, error) {
	var cached VersionProjection
	if err := v.cache.GetActualVersion(ctx, articleLanguageCode, &cached); err == nil {
		return &cached, nil
	}

	version, err := v.store.GetActualVersionForLanguage(ctx, articleLanguageCode)
	if err != nil {
		return nil, err
	}
	if version.Schema != nil {
		if err := decodeLinks(v.compress, version.Schema.Sections); err != nil {
			return nil, err
		}
	}

	projection := mapVersion(version)
	if err := v.cache.SetActualVersion(ctx, articleLanguageCode, projection); err != nil {
		logrus.Errorf("error caching actual version for language %s: %v", articleLanguageCode, err)
	}
	return projection, nil
}
