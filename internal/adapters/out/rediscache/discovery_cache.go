// Package rediscache implements the discovery cache on Redis.
// The cache holds a snapshot of the pending-package pool shared by all
// application instances. Writers invalidate it synchronously whenever a
// package leaves the pool; each invalidation advances a generation counter
// that snapshot writers must match, so an in-flight pre-invalidation
// snapshot can never be written back over a fresher invalidation.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
)

const (
	pendingKey    = "discovery:pending"
	pendingGenKey = "discovery:pending:gen"
	pendingTTL    = 5 * time.Minute
)

// RedisDiscoveryCache caches the pending pool as a JSON document under a
// single key. Entries carry every aggregate field so reads can rebuild full
// aggregates without touching the database.
type RedisDiscoveryCache struct {
	client *redis.Client
}

// NewRedisDiscoveryCache connects to Redis and verifies the connection.
func NewRedisDiscoveryCache(addr string) (*RedisDiscoveryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return &RedisDiscoveryCache{client: client}, nil
}

// Close releases the underlying Redis connection pool.
func (c *RedisDiscoveryCache) Close() error {
	return c.client.Close()
}

// GetPending returns the cached pending pool. A missing key is a miss, not
// an error. A document that no longer restores to valid aggregates is
// treated as a miss as well, so a schema change cannot poison discovery.
func (c *RedisDiscoveryCache) GetPending(ctx context.Context) ([]*foodpackage.Package, bool, error) {
	data, err := c.client.Get(ctx, pendingKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil // cache miss
		}
		return nil, false, err
	}

	var docs []packageDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false, nil
	}

	packages := make([]*foodpackage.Package, 0, len(docs))
	for _, doc := range docs {
		p, restoreErr := doc.toDomain()
		if restoreErr != nil {
			return nil, false, nil
		}
		packages = append(packages, p)
	}

	return packages, true, nil
}

// Generation returns the current invalidation generation. A generation key
// that does not exist yet reads as zero.
func (c *RedisDiscoveryCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, pendingGenKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}

// SetPending replaces the cached pending pool, but only while the generation
// still matches the one the caller pinned before reading storage. The check
// and the write run under WATCH, so a snapshot read before an invalidation
// can never overwrite the invalidated pool.
func (c *RedisDiscoveryCache) SetPending(
	ctx context.Context, packages []*foodpackage.Package, generation int64,
) error {
	docs := make([]packageDoc, 0, len(packages))
	for _, p := range packages {
		docs = append(docs, fromDomain(p))
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, genErr := tx.Get(ctx, pendingGenKey).Int64()
		if genErr != nil && genErr != redis.Nil {
			return genErr
		}
		if current != generation {
			return nil // superseded by a newer invalidation
		}

		_, pipeErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, pendingKey, data, pendingTTL)
			return nil
		})
		return pipeErr
	}, pendingGenKey)

	if err == redis.TxFailedErr {
		return nil // generation moved mid-write; the snapshot is stale
	}
	return err
}

// Invalidate drops the cached pool and advances the generation in one
// transaction.
func (c *RedisDiscoveryCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, pendingGenKey)
		pipe.Del(ctx, pendingKey)
		return nil
	})
	return err
}

// packageDoc is the cache representation of a package aggregate.
type packageDoc struct {
	ID           string     `json:"id"`
	StoreID      string     `json:"store_id"`
	StoreName    string     `json:"store_name"`
	StoreAddress string     `json:"store_address"`
	StoreLat     *float64   `json:"store_lat,omitempty"`
	StoreLng     *float64   `json:"store_lng,omitempty"`
	WeightLbs    float64    `json:"weight_lbs"`
	FoodType     string     `json:"food_type"`
	Instructions string     `json:"instructions"`
	WindowStart  time.Time  `json:"window_start"`
	WindowEnd    time.Time  `json:"window_end"`
	PickupCode   string     `json:"pickup_code"`
	DeliveryCode string     `json:"delivery_code"`
	Status       int        `json:"status"`
	CourierID    *string    `json:"courier_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt   *time.Time `json:"picked_up_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func fromDomain(p *foodpackage.Package) packageDoc {
	doc := packageDoc{
		ID:           p.ID().String(),
		StoreID:      p.StoreID().String(),
		StoreName:    p.StoreName(),
		StoreAddress: p.StoreAddress(),
		WeightLbs:    p.WeightLbs(),
		FoodType:     p.FoodType(),
		Instructions: p.Instructions(),
		WindowStart:  p.Window().Start(),
		WindowEnd:    p.Window().End(),
		PickupCode:   p.PickupCode().Value(),
		DeliveryCode: p.DeliveryCode().Value(),
		Status:       int(p.Status()),
		CreatedAt:    p.CreatedAt(),
		AssignedAt:   p.AssignedAt(),
		PickedUpAt:   p.PickedUpAt(),
		CompletedAt:  p.CompletedAt(),
	}

	if loc := p.StoreLocation(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		doc.StoreLat, doc.StoreLng = &lat, &lng
	}

	if id := p.Courier(); id != nil {
		s := id.String()
		doc.CourierID = &s
	}

	return doc
}

func (doc packageDoc) toDomain() (*foodpackage.Package, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromString(doc.StoreID)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if doc.CourierID != nil {
		cID, courierErr := kernel.UUIDFromString(*doc.CourierID)
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var storeLocation *kernel.GeoPoint
	if doc.StoreLat != nil && doc.StoreLng != nil {
		loc, locErr := kernel.NewGeoPoint(*doc.StoreLat, *doc.StoreLng)
		if locErr != nil {
			return nil, locErr
		}
		storeLocation = &loc
	}

	window, err := kernel.NewTimeWindow(doc.WindowStart, doc.WindowEnd)
	if err != nil {
		return nil, err
	}

	pickupCode, err := kernel.AccessCodeFromString(doc.PickupCode)
	if err != nil {
		return nil, err
	}

	deliveryCode, err := kernel.AccessCodeFromString(doc.DeliveryCode)
	if err != nil {
		return nil, err
	}

	return foodpackage.RestorePackage(
		id,
		storeID,
		doc.StoreName,
		doc.StoreAddress,
		storeLocation,
		doc.WeightLbs,
		doc.FoodType,
		doc.Instructions,
		window,
		pickupCode,
		deliveryCode,
		foodpackage.Status(doc.Status),
		courierID,
		doc.CreatedAt,
		doc.AssignedAt,
		doc.PickedUpAt,
		doc.CompletedAt,
	)
}
