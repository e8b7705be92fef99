package services

import (
	"sort"
	"strings"
	"time"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/errs"
)

// Urgency windows: a package whose pickup window closes within
// urgentWithin is High, within soonWithin is Medium, otherwise Low.
// Already-closed windows count as High.
const (
	urgentWithin = 2 * time.Hour
	soonWithin   = 6 * time.Hour
)

// UrgencyTier classifies how soon a package's pickup window closes.
type UrgencyTier int

const (
	// UrgencyLow means the window stays open for six hours or more.
	UrgencyLow UrgencyTier = iota + 1
	// UrgencyMedium means the window closes within six hours.
	UrgencyMedium
	// UrgencyHigh means the window closes within two hours or has closed.
	UrgencyHigh
)

// String implements fmt.Stringer.
func (u UrgencyTier) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	default:
		return "unknown"
	}
}

// SortMode selects the ordering of discovery results.
type SortMode int

const (
	// SortByDistance orders by ascending distance; the default.
	SortByDistance SortMode = iota
	// SortByPoints orders by descending derived reward points.
	SortByPoints
	// SortByUrgency orders by descending urgency tier.
	SortByUrgency
)

// ParseSortMode maps the wire-level sort key to a SortMode. Unrecognized or
// empty keys fall back to distance ordering.
func ParseSortMode(s string) SortMode {
	switch strings.ToLower(s) {
	case "points":
		return SortByPoints
	case "urgency":
		return SortByUrgency
	default:
		return SortByDistance
	}
}

// DiscoveryFilter narrows the set of pending packages. Zero-value fields
// are inactive; active filters compose by logical AND.
type DiscoveryFilter struct {
	// Text matches case-insensitively against store name and address.
	Text string
	// FoodType matches the category case-insensitively.
	FoodType string
	// MaxDistanceMiles excludes packages farther away, and packages whose
	// distance is unknown.
	MaxDistanceMiles *float64
}

// RankedPackage is one discovery result: the package plus its derived,
// read-only ranking attributes.
type RankedPackage struct {
	Package *foodpackage.Package

	// DistanceMiles is nil when either the courier's position or the store
	// location is unknown. Unknown distances sort last under every mode and
	// must render as "unknown", never as zero or infinity.
	DistanceMiles *float64

	RewardPoints int
	Urgency      UrgencyTier
}

// DiscoveryRanker builds the ordered view of pending packages that couriers
// browse. It is stateless; construct once and share.
//
// Example:
//
//	ranker := services.NewDiscoveryRanker()
//	results, err := ranker.Rank(pending, &courierPos, services.DiscoveryFilter{}, services.SortByDistance, time.Now())
type DiscoveryRanker struct{}

// NewDiscoveryRanker creates a DiscoveryRanker.
func NewDiscoveryRanker() DiscoveryRanker {
	return DiscoveryRanker{}
}

// Rank filters and orders pending packages for a courier.
//
// Only Pending packages are eligible; anything else in the input is
// skipped. courierAt may be nil, in which case every distance is unknown.
// now is the reference time for urgency tiers. Ties under every sort mode
// break by package ID ascending so repeated queries return identical
// orderings.
func (r DiscoveryRanker) Rank(
	packages []*foodpackage.Package,
	courierAt *kernel.GeoPoint,
	filter DiscoveryFilter,
	mode SortMode,
	now time.Time,
) ([]RankedPackage, error) {
	if courierAt != nil {
		if err := courierAt.Validate(); err != nil {
			return nil, err
		}
	}
	if filter.MaxDistanceMiles != nil && *filter.MaxDistanceMiles < 0 {
		return nil, errs.NewValueIsInvalidError("maxDistanceMiles")
	}

	ranked := make([]RankedPackage, 0, len(packages))
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if p.Status() != foodpackage.Pending {
			continue
		}
		if !matchesFilter(p, filter) {
			continue
		}

		distance, err := distanceMiles(p, courierAt)
		if err != nil {
			return nil, err
		}
		if filter.MaxDistanceMiles != nil && (distance == nil || *distance > *filter.MaxDistanceMiles) {
			continue
		}

		ranked = append(ranked, RankedPackage{
			Package:       p,
			DistanceMiles: distance,
			RewardPoints:  p.RewardPoints(),
			Urgency:       urgencyOf(p, now),
		})
	}

	sortRanked(ranked, mode)
	return ranked, nil
}

func matchesFilter(p *foodpackage.Package, filter DiscoveryFilter) bool {
	if filter.Text != "" {
		needle := strings.ToLower(filter.Text)
		if !strings.Contains(strings.ToLower(p.StoreName()), needle) &&
			!strings.Contains(strings.ToLower(p.StoreAddress()), needle) {
			return false
		}
	}

	if filter.FoodType != "" && !strings.EqualFold(p.FoodType(), filter.FoodType) {
		return false
	}

	return true
}

func distanceMiles(p *foodpackage.Package, courierAt *kernel.GeoPoint) (*float64, error) {
	if courierAt == nil || p.StoreLocation() == nil {
		return nil, nil
	}

	d, err := courierAt.DistanceMiles(*p.StoreLocation())
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func urgencyOf(p *foodpackage.Package, now time.Time) UrgencyTier {
	remaining := p.Window().Remaining(now)
	switch {
	case remaining < urgentWithin:
		return UrgencyHigh
	case remaining < soonWithin:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// sortRanked orders results in place. Unknown distances sort last under
// every mode; remaining ties break by package ID ascending.
func sortRanked(ranked []RankedPackage, mode SortMode) {
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if unknown, decided := unknownDistanceLast(a, b); decided {
			return unknown
		}

		switch mode {
		case SortByPoints:
			if a.RewardPoints != b.RewardPoints {
				return a.RewardPoints > b.RewardPoints
			}
		case SortByUrgency:
			if a.Urgency != b.Urgency {
				return a.Urgency > b.Urgency
			}
		case SortByDistance:
			if a.DistanceMiles != nil && b.DistanceMiles != nil && *a.DistanceMiles != *b.DistanceMiles {
				return *a.DistanceMiles < *b.DistanceMiles
			}
		}

		return a.Package.ID().String() < b.Package.ID().String()
	})
}

// unknownDistanceLast reports whether the pair ordering is decided purely by
// one side lacking a distance.
func unknownDistanceLast(a, b RankedPackage) (less, decided bool) {
	if (a.DistanceMiles == nil) == (b.DistanceMiles == nil) {
		return false, false
	}
	return a.DistanceMiles != nil, true
}
