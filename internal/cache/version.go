package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/emrgen/article/internal/compress"
)

const versionTTL = time.Hour

func versionKey(code string) string {
	return "article:version:" + code
}

func actualVersionKey(articleLanguageCode string) string {
	return "article:actual:" + articleLanguageCode
}

// VersionCache caches version projections by code and the actual version per
// article language. Version snapshots are immutable so the per-code entries
// only need a TTL; the actual entry is invalidated on approval. Values are
// gzip-encoded JSON.
//
// A nil VersionCache is a no-op: every read misses and every write succeeds.
type VersionCache struct {
	kv      *Redis
	encoder compress.Compress
}

func NewVersionCache(kv *Redis) *VersionCache {
	return &VersionCache{kv: kv, encoder: compress.NewGZip()}
}

func (c *VersionCache) set(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data, err = c.encoder.Encode(data)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, key, data, versionTTL)
}

func (c *VersionCache) get(ctx context.Context, key string, out any) error {
	if c == nil {
		return ErrCacheMiss
	}
	data, err := c.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	data, err = c.encoder.Decode(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *VersionCache) SetVersion(ctx context.Context, code string, v any) error {
	return c.set(ctx, versionKey(code), v)
}

func (c *VersionCache) GetVersion(ctx context.Context, code string, out any) error {
	return c.get(ctx, versionKey(code), out)
}

func (c *VersionCache) SetActualVersion(ctx context.Context, articleLanguageCode string, v any) error {
	return c.set(ctx, actualVersionKey(articleLanguageCode), v)
}

func (c *VersionCache) GetActualVersion(ctx context.Context, articleLanguageCode string, out any) error {
	return c.get(ctx, actualVersionKey(articleLanguageCode), out)
}

// InvalidateVersion drops the cached projection of a version. Needed when a
// version's actual or archived markers move; the snapshot content itself
// never changes.
func (c *VersionCache) InvalidateVersion(ctx context.Context, code string) error {
	if c == nil {
		return nil
	}
	return c.kv.Delete(ctx, versionKey(code))
}

// InvalidateActualVersion drops the cached actual version of a language.
// Called after an approval moves the authoritative lineage.
func (c *VersionCache) InvalidateActualVersion(ctx context.Context, articleLanguageCode string) error {
	if c == nil {
		return nil
	}
	return c.kv.Delete(ctx, actualVersionKey(articleLanguageCode))
}
