package cache

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ViewCache caches view payloads under their route path. Every variant of a
// path (query string, page number) is dropped together by Invalidate.
//
// Each path carries a generation that Invalidate bumps. A fetch that started
// under an older generation is returned to its caller but not stored.
type ViewCache struct {
	store Cache
	ttl   time.Duration
	log   *zap.Logger

	mu   sync.Mutex
	gens map[string]uint64
}

func NewViewCache(store Cache, ttl time.Duration, log *zap.Logger) *ViewCache {
	return &ViewCache{
		store: store,
		ttl:   ttl,
		log:   log.Named("cache.views"),
		gens:  map[string]uint64{},
	}
}

// Invalidate marks every cached variant of path stale.
func (v *ViewCache) Invalidate(ctx context.Context, path string) {
	v.mu.Lock()
	v.gens[path]++
	v.mu.Unlock()

	v.store.DeleteByPrefix(ctx, viewKey(path, ""))
	v.log.Debug("view invalidated", zap.String("path", path))
}

func (v *ViewCache) generation(path string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gens[path]
}

func (v *ViewCache) get(ctx context.Context, key string, dst any) bool {
	b, ok := v.store.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		v.log.Warn("cached view unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (v *ViewCache) set(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		v.log.Warn("view not cacheable", zap.String("key", key), zap.Error(err))
		return
	}
	v.store.Set(ctx, key, b, v.ttl)
}

// Load returns the cached payload for path and variant, or calls fetch and caches its result.
// Errors from fetch are returned as is and never cached.
func Load[T any](ctx context.Context, v *ViewCache, path, variant string, fetch func(context.Context) (T, error)) (T, error) {
	key := viewKey(path, variant)

	var cached T
	if v.get(ctx, key, &cached) {
		return cached, nil
	}

	gen := v.generation(path)
	fresh, err := fetch(ctx)
	if err != nil {
		return fresh, err
	}
	if v.generation(path) != gen {
		v.log.Debug("view changed during fetch, not cached", zap.String("key", key))
		return fresh, nil
	}
	v.set(ctx, key, fresh)
	return fresh, nil
}

// viewKey is PrefixView + path + "?" + variant; the "?" keeps /dashboard from
// matching /dashboard/invoices on prefix deletes.
func viewKey(path, variant string) string {
	return PrefixView + path + "?" + variant
}
