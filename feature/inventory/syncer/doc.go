// Package syncer drives the inventory sync loop.
//
// A cycle runs six phases in a fixed order: counterparties, stores, uoms,
// groups, products and stock. Each phase walks one API collection page by
// page through the cursor chain, normalizes every row and upserts it. A
// cooldown separates phases to stay within the API rate budget.
//
// Failures are contained:
//
//   - a transport error or timeout abandons the current phase only; the next
//     phase still runs and the next cycle starts the phase over from page one
//   - a failed row write is logged and counted, the rest of the page continues
//   - rows rejected by the normalizer or with unresolved references are counted as skipped
//
// After the phases the projection is rebuilt and published. Cancellation is
// observed between phases, pages and rows; a row write already started runs
// to completion.
package syncer
