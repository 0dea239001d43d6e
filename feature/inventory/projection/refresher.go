package projection

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TreeBuilder produces a fresh projection.
type TreeBuilder interface {
	Build(ctx context.Context) (*Projection, error)
}

// Snapshotter persists and restores published projections.
type Snapshotter interface {
	Save(ctx context.Context, p *Projection) error
	Load(ctx context.Context) (*Projection, error)
}

// ErrNoArchive is returned by Restore when no archive is configured.
var ErrNoArchive = errors.New("projection archive is not configured")

// Refresher rebuilds and publishes the projection. Concurrent refreshes share one build.
type Refresher struct {
	cache   *Cache
	builder TreeBuilder
	archive Snapshotter
	logger  *zap.Logger
	sf      singleflight.Group
}

// NewRefresher wires a builder to a cache. archive may be nil.
func NewRefresher(cache *Cache, builder TreeBuilder, archive Snapshotter, logger *zap.Logger) *Refresher {
	return &Refresher{cache: cache, builder: builder, archive: archive, logger: logger}
}

// Cache returns the cache the refresher publishes into.
func (r *Refresher) Cache() *Cache {
	return r.cache
}

// Refresh builds and publishes a new projection. On failure the previously
// published projection stays in place and the error is returned.
func (r *Refresher) Refresh(ctx context.Context) (*Projection, error) {
	v, err, shared := r.sf.Do("projection", func() (interface{}, error) {
		start := time.Now()
		p, err := r.builder.Build(ctx)
		if err != nil {
			r.logger.Error("Projection build failed, keeping previous", zap.Error(err))
			return nil, err
		}
		r.publish(ctx, p, start)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Debug("Projection rebuild shared with concurrent caller")
	}
	return v.(*Projection), nil
}

// WarmUp publishes the first projection. A failed or empty build falls back
// to the archived projection, so stale data is served instead of nothing.
// Without an archive the empty build is published; a failed one is returned.
func (r *Refresher) WarmUp(ctx context.Context) (*Projection, error) {
	start := time.Now()
	p, err := r.builder.Build(ctx)
	if err == nil && !p.IsEmpty() {
		r.publish(ctx, p, start)
		return p, nil
	}
	if err != nil {
		r.logger.Warn("Initial projection build failed, trying archive", zap.Error(err))
	}

	restored, rerr := r.Restore(ctx)
	if rerr == nil {
		return restored, nil
	}
	if !errors.Is(rerr, ErrNoArchive) {
		r.logger.Warn("Failed to restore archived projection", zap.Error(rerr))
	}
	if err != nil {
		return nil, err
	}
	r.publish(ctx, p, start)
	return p, nil
}

// publish swaps p into the cache and archives it. An empty projection is
// never archived so it cannot replace the last good snapshot.
func (r *Refresher) publish(ctx context.Context, p *Projection, start time.Time) {
	r.cache.Publish(p)
	r.logger.Info("Projection published",
		zap.Int("groups", p.Size()),
		zap.Duration("duration", time.Since(start)))

	if r.archive == nil || p.IsEmpty() {
		return
	}
	if err := r.archive.Save(ctx, p); err != nil {
		r.logger.Warn("Failed to archive projection", zap.Error(err))
	}
}

// Restore publishes the archived projection.
func (r *Refresher) Restore(ctx context.Context) (*Projection, error) {
	if r.archive == nil {
		return nil, ErrNoArchive
	}
	p, err := r.archive.Load(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Publish(p)
	r.logger.Info("Projection restored from archive",
		zap.Int("groups", p.Size()),
		zap.Time("built_at", p.BuiltAt))
	return p, nil
}
