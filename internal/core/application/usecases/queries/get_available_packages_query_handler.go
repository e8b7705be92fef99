package queries

import (
	"context"
	"time"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/services"
	"foodbridge/internal/core/ports"
)

// GetAvailablePackagesQueryHandler serves courier discovery listings.
//
// Unlike the store listing this read goes through the domain: ranking needs
// distances, urgency tiers and reward points, which are computed against the
// aggregate, so the handler loads pending aggregates (from the discovery
// cache when warm, the repository otherwise) and hands them to the ranker.
type GetAvailablePackagesQueryHandler struct {
	repo   ports.PackageRepository
	cache  ports.DiscoveryCache
	ranker services.DiscoveryRanker
}

// NewGetAvailablePackagesQueryHandler creates a handler for discovery queries.
// The repository must be bound to the base connection, not a transaction.
func NewGetAvailablePackagesQueryHandler(
	repo ports.PackageRepository,
	cache ports.DiscoveryCache,
) GetAvailablePackagesQueryHandler {
	return GetAvailablePackagesQueryHandler{
		repo:   repo,
		cache:  cache,
		ranker: services.NewDiscoveryRanker(),
	}
}

// Handle executes the discovery query.
// Loads the pending pool, then filters and orders it for the courier.
// Cache misses fall through to the repository and re-warm the cache; cache
// failures are ignored because the repository remains the source of truth.
func (h GetAvailablePackagesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailablePackagesQuery,
) ([]GetAvailablePackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending, err := h.loadPending(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := h.ranker.Rank(pending, query.CourierAt(), query.Filter(), query.SortMode(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	responses := make([]GetAvailablePackagesQueryResponse, 0, len(ranked))
	for _, entry := range ranked {
		responses = append(responses, toResponse(entry))
	}

	return responses, nil
}

func (h GetAvailablePackagesQueryHandler) loadPending(ctx context.Context) ([]*foodpackage.Package, error) {
	if cached, ok, cacheErr := h.cache.GetPending(ctx); cacheErr == nil && ok {
		return cached, nil
	}

	// Pin the generation before the database read. If a claim invalidates
	// the cache while this snapshot is in flight, SetPending rejects it and
	// the claimed package cannot be resurrected into listings.
	gen, genErr := h.cache.Generation(ctx)

	pending, err := h.repo.GetAllInStatus(ctx, foodpackage.Pending)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		_ = h.cache.SetPending(ctx, pending, gen)
	}

	return pending, nil
}

func toResponse(entry services.RankedPackage) GetAvailablePackagesQueryResponse {
	p := entry.Package

	var lat, lng *float64
	if loc := p.StoreLocation(); loc != nil {
		latVal, lngVal := loc.Lat(), loc.Lng()
		lat, lng = &latVal, &lngVal
	}

	return GetAvailablePackagesQueryResponse{
		ID:            p.ID(),
		StoreName:     p.StoreName(),
		StoreAddress:  p.StoreAddress(),
		StoreLat:      lat,
		StoreLng:      lng,
		WeightLbs:     p.WeightLbs(),
		FoodType:      p.FoodType(),
		Instructions:  p.Instructions(),
		WindowStart:   p.Window().Start(),
		WindowEnd:     p.Window().End(),
		DistanceMiles: entry.DistanceMiles,
		RewardPoints:  entry.RewardPoints,
		Urgency:       entry.Urgency.String(),
	}
}
