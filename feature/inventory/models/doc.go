// Package models defines the relational tables the sync pipeline writes.
//
// Tables are keyed by the external uid so every write is a natural upsert.
// Product -> ProductGroup and ProductRemain -> Product/Store are hard foreign
// keys; Product -> UnitOfMeasure and ProductGroup -> parent are soft.
package models
