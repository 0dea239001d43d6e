// Package normalize maps raw page rows of each entity kind into storage rows.
//
// Every function is pure. A row that is malformed, misses a required field,
// or is excluded by a business rule yields ok == false and is simply not
// written; nothing here returns an error.
package normalize
