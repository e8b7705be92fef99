// Package kernel contains the shared value objects of the domain model:
// identifiers, geographic coordinates, pickup time windows, and the short
// numeric access codes that gate lifecycle transitions.
//
// All types in this package are immutable value objects created through
// validating constructors. Zero values fail Validate, which keeps improperly
// initialized objects out of the aggregates that embed them.
package kernel
