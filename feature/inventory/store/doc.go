// Package store persists synchronized inventory entities.
//
// Every write is an upsert keyed by the external uid (product and store for
// remains), so replaying a sync cycle leaves the tables unchanged. References
// are checked before a write: a product without a stored group or a remain
// without a stored product or store is dropped with ErrUnresolvedReference,
// while a dangling unit of measure is simply cleared. Card balances are
// updated in place and cards are never created here.
//
// Reads serve the projection builder, either one level at a time
// (GroupsByParent, ProductsByGroup, PositiveRemains) or in bulk.
package store
