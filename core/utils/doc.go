// Package utils provides small helpers shared by the sync pipeline: parsing
// entity references out of external API hrefs and coercing stock quantities
// into storage counts.
package utils
