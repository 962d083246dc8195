// Package rediscache caches planned route geometry in front of the route read
// model. Entries are GeoJSON LineStrings keyed by trip.
package rediscache

import (
	"context"
	"log/slog"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/ports"
	"offroute/internal/pkg/routegeojson"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "offroute:route:"

// DefaultTTL bounds how long a replanned leg can be served stale.
const DefaultTTL = 2 * time.Minute

var _ ports.RouteGeometryProvider = (*RouteCache)(nil)

type RouteCache struct {
	c      *redis.Client
	next   ports.RouteGeometryProvider
	ttl    time.Duration
	logger *slog.Logger
}

func NewRouteCache(addr string, next ports.RouteGeometryProvider, ttl time.Duration, logger *slog.Logger) *RouteCache {
	return newRouteCacheWithClient(redis.NewClient(&redis.Options{Addr: addr}), next, ttl, logger)
}

func newRouteCacheWithClient(c *redis.Client, next ports.RouteGeometryProvider, ttl time.Duration, logger *slog.Logger) *RouteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RouteCache{c: c, next: next, ttl: ttl, logger: logger.With("component", "RouteCache")}
}

// GetCurrentLegGeometry serves from Redis and falls back to the wrapped
// provider on a miss. Redis failures degrade to the wrapped provider;
// errors from it, errs.DataUnavailableError included, are never cached.
func (r *RouteCache) GetCurrentLegGeometry(ctx context.Context, tripID kernel.UUID) (kernel.RouteGeometry, error) {
	key := keyPrefix + tripID.String()

	g, ok, err := r.get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "route cache read failed", "tripId", tripID.String(), "error", err)
	}
	if ok {
		return g, nil
	}

	g, err = r.next.GetCurrentLegGeometry(ctx, tripID)
	if err != nil {
		return kernel.RouteGeometry{}, err
	}

	if err = r.set(ctx, key, g); err != nil {
		r.logger.WarnContext(ctx, "route cache write failed", "tripId", tripID.String(), "error", err)
	}
	return g, nil
}

// Invalidate drops the cached geometry of a trip, e.g. after a replan.
func (r *RouteCache) Invalidate(ctx context.Context, tripID kernel.UUID) error {
	if err := r.c.Del(ctx, keyPrefix+tripID.String()).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func (r *RouteCache) Close() error {
	return r.c.Close()
}

func (r *RouteCache) get(ctx context.Context, key string) (kernel.RouteGeometry, bool, error) {
	val, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return kernel.RouteGeometry{}, false, nil
	}
	if err != nil {
		return kernel.RouteGeometry{}, false, errors.Wrap(err, "redis get")
	}

	g, err := routegeojson.Unmarshal(val)
	if err != nil {
		return kernel.RouteGeometry{}, false, errors.Wrap(err, "decode cached route")
	}
	return g, true, nil
}

func (r *RouteCache) set(ctx context.Context, key string, g kernel.RouteGeometry) error {
	val, err := routegeojson.Marshal(g)
	if err != nil {
		return errors.Wrap(err, "encode route")
	}
	if err = r.c.Set(ctx, key, val, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}
