// Package services contains stateless domain services that operate across
// aggregates. The DiscoveryRanker turns the set of pending packages into
// the ordered, filtered view couriers browse: it computes great-circle
// distances, applies AND-composed filters, derives reward points and
// urgency tiers, and sorts with a deterministic tie-break.
package services
