// Package middleware groups the Fiber middleware of the serving adapter.
//
// # Components
//
//   - auth: rejects requests without the configured X-API-Key header (or
//     api_key query parameter). An empty key disables the check; listed paths
//     such as /health are always public.
//   - rayid: tags every request with a ray id, reusing the caller's X-Ray-ID
//     header when present, and echoes it on the response. logger.WithRayID
//     reads it back from the context.
//
// rayid is registered first so that every later log line carries the id.
package middleware
