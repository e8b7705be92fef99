// Package foodpackage contains the Package aggregate: one unit of surplus
// food offered by a store for courier pickup and delivery to a food bank.
//
// The aggregate enforces the package lifecycle state machine
// (Pending -> Assigned -> PickedUp -> Completed), the exclusive courier
// assignment invariant, and the access-code gates on the pickup and
// delivery transitions. All state changes go through validated methods;
// direct struct initialization is prevented by the constructor guard.
package foodpackage
