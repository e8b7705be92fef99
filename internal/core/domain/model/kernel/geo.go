package kernel

import (
	"errors"
	"fmt"
	"math"

	"foodbridge/internal/pkg/errs"
	"foodbridge/internal/pkg/guard"
)

const (
	// GeoLatMin and GeoLatMax bound valid latitudes in decimal degrees.
	GeoLatMin = -90.0
	GeoLatMax = 90.0
	// GeoLngMin and GeoLngMax bound valid longitudes in decimal degrees.
	GeoLngMin = -180.0
	GeoLngMax = 180.0

	// earthRadiusMiles is the mean Earth radius used by the haversine formula.
	earthRadiusMiles = 3958.8
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position in decimal degrees. It is an
// immutable value object; the zero value is invalid and fails Validate.
//
// Store locations and courier positions are GeoPoints. A package whose store
// has no recorded location carries a nil *GeoPoint and is treated as
// "distance unknown" by discovery.
//
// Example:
//
//	cambridge, err := kernel.NewGeoPoint(42.3601, -71.0589)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude.
// Returns a validation error if either coordinate is out of range.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.4f,%.4f)", p.lat, p.lng)
}

// IsEqual compares two GeoPoints for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceMiles calculates the great-circle distance between two points in
// statute miles using the haversine formula. Both points must be properly
// constructed.
//
// Example:
//
//	cambridge, _ := kernel.NewGeoPoint(42.3601, -71.0589)
//	harvard, _ := kernel.NewGeoPoint(42.3736, -71.1189)
//	miles, _ := cambridge.DistanceMiles(harvard) // ≈ 3.2
func (p GeoPoint) DistanceMiles(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLng := (other.lng - p.lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusMiles * c, nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoLatMin || lat > GeoLatMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoLatMin, GeoLatMax)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoLngMin || lng > GeoLngMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoLngMin, GeoLngMax)
	}

	p.lng = lng
	return nil
}
