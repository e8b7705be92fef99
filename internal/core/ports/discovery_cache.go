package ports

import (
	"context"

	"foodbridge/internal/core/domain/model/foodpackage"
)

// DiscoveryCache keeps a shared snapshot of the pending-package pool so that
// discovery listings do not hit the primary store on every request.
//
// The cache is invalidated synchronously whenever a package leaves the
// pending pool, and the claim is acknowledged only after the invalidation
// succeeds, so a package that was just claimed stops showing up in listings
// right away rather than after a TTL.
//
// Each invalidation advances a generation counter. Writers of the snapshot
// pin the generation before reading storage and pass it to SetPending, which
// refuses the write when an invalidation landed in between. Without that
// guard a reader holding a pre-invalidation snapshot could resurrect the
// claimed package for the rest of the TTL.
type DiscoveryCache interface {
	// GetPending returns the cached pending pool. The boolean reports a hit;
	// a miss is not an error.
	GetPending(ctx context.Context) ([]*foodpackage.Package, bool, error)

	// Generation returns the current invalidation generation. Pin it before
	// reading storage and hand it to SetPending.
	Generation(ctx context.Context) (int64, error)

	// SetPending replaces the cached pending pool, unless the generation has
	// advanced since the caller pinned it. A rejected write is not an error.
	SetPending(ctx context.Context, packages []*foodpackage.Package, generation int64) error

	// Invalidate drops the cached pool and advances the generation so that
	// stale in-flight snapshots cannot be written back.
	Invalidate(ctx context.Context) error
}
