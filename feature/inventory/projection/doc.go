// Package projection derives the in-memory "available inventory" tree.
//
// The tree mirrors the product group forest, keeping only groups that own a
// product with positive stock or a kept subgroup. Each node maps a product
// name to a store name to a count. Siblings are ordered by name and encode as
// an ordered JSON object.
//
// Builder walks the forest post-order against a Source, one query per group
// and per product. PreloadBuilder loads the three tables once and walks the
// same algorithm in memory; both produce identical trees.
//
// Cache holds the published snapshot behind an atomic pointer: Get never
// blocks and a snapshot is never mutated after publish. Refresher rebuilds
// and publishes, coalescing concurrent callers, and optionally stores every
// published tree through an Archive backed by object storage.
package projection
