// Package server holds the HTTP serving adapter configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure: the HTTP port, the API key that
// protects every route, and the graceful shutdown budget shared with the sync loop.
package server
