// Package querycache deduplicates and caches read operations. Every lookup
// is keyed by (namespace, operation, params); identical keys inside the
// freshness window are served from the cache backend without touching the
// network, and identical concurrent lookups collapse into one in-flight call.
package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/voyagekit/voyagekit.go/pkg/cache"
	"github.com/voyagekit/voyagekit.go/pkg/logger"
)

// DefaultFreshness is how long a successful result is served from cache.
const DefaultFreshness = 5 * time.Minute

// ErrDisabled is returned by Lookup when the enabled precondition is false.
// No request is issued in that case.
var ErrDisabled = errors.New("querycache: lookup disabled")

// Key identifies one cached read. Params are escaped individually so a value
// containing the separator cannot collide with another key.
type Key struct {
	Namespace string
	Op        string
	Params    []string
}

func (k Key) String() string {
	parts := make([]string, 0, len(k.Params)+2)
	parts = append(parts, k.Namespace, k.Op)
	for _, p := range k.Params {
		parts = append(parts, url.QueryEscape(p))
	}
	return strings.Join(parts, ":")
}

type QueryCache struct {
	backend   cache.Cache
	freshness time.Duration
	group     singleflight.Group
	logger    logger.Logger
}

type Option func(*QueryCache)

func WithFreshness(d time.Duration) Option {
	return func(qc *QueryCache) { qc.freshness = d }
}

func WithLogger(l logger.Logger) Option {
	return func(qc *QueryCache) { qc.logger = l }
}

func New(backend cache.Cache, opts ...Option) *QueryCache {
	qc := &QueryCache{
		backend:   backend,
		freshness: DefaultFreshness,
		logger:    logger.NewNoop(),
	}
	for _, opt := range opts {
		opt(qc)
	}
	return qc
}

// Result carries the looked-up value and whether it came from cache.
type Result[T any] struct {
	Data      T
	FromCache bool
}

// Lookup serves key from cache when fresh, otherwise runs fetch (retrying
// once on failure) and caches the outcome. Errors are never cached: a failed
// key stays stale and the next Lookup fetches again.
func Lookup[T any](ctx context.Context, qc *QueryCache, key Key, enabled bool, fetch func(context.Context) (T, error)) (Result[T], error) {
	var zero Result[T]
	if !enabled {
		return zero, ErrDisabled
	}

	ks := key.String()
	v, err, _ := qc.group.Do(ks, func() (any, error) {
		raw, ok, err := qc.backend.Get(ctx, ks)
		if err != nil {
			qc.logger.Warn("cache read failed", "key", ks, "err", err)
		}
		if ok {
			var data T
			if err := json.Unmarshal(raw, &data); err == nil {
				return Result[T]{Data: data, FromCache: true}, nil
			}
			// corrupt entry, drop it and fall through to the network
			_ = qc.backend.Delete(ctx, ks)
		}

		data, err := fetch(ctx)
		if err != nil && ctx.Err() == nil {
			qc.logger.Debug("fetch failed, retrying once", "key", ks, "err", err)
			data, err = fetch(ctx)
		}
		if err != nil {
			return nil, err
		}

		if encoded, err := json.Marshal(data); err == nil {
			if err := qc.backend.Set(ctx, ks, encoded, qc.freshness); err != nil {
				qc.logger.Warn("cache write failed", "key", ks, "err", err)
			}
		}
		return Result[T]{Data: data}, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(Result[T]), nil
}

// Invalidate drops every cached key in the namespace. Called after any
// successful write so the next list or detail lookup refetches.
func (qc *QueryCache) Invalidate(ctx context.Context, namespace string) {
	if err := qc.backend.DeletePrefix(ctx, namespace+":"); err != nil {
		qc.logger.Warn("invalidate failed", "namespace", namespace, "err", err)
	}
}

// Mutate runs a write operation and, on success, invalidates the entity's
// namespace. The decoded result is returned so callers can publish it to the
// mirror store without waiting for a refetch.
func Mutate[T any](ctx context.Context, qc *QueryCache, namespace string, fn func(context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	qc.Invalidate(ctx, namespace)
	return result, nil
}
