// Package inventory exposes the synchronized inventory over HTTP.
//
// Projection reads are served from the in-memory cache only; the database is
// touched for card lookups and explicit rebuilds.
//
// # Components
//
//   - Service: reads the published projection, looks up cards, triggers rebuilds.
//   - Handler: Fiber routes.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET  /inventory              : the whole projection with its build time.
//   - GET  /inventory/groups/:name : every subtree of the named group.
//   - POST /inventory/rebuild      : rebuild and publish now.
//   - GET  /cards/:number          : loyalty card balance.
//   - GET  /sync/status            : report of the last sync cycle.
//
// The sync pipeline itself lives in the sub-packages: normalize, store,
// projection and syncer.
package inventory
