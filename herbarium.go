// Package herbarium provides the content pipeline behind a multilingual
// herbal encyclopedia. It crawls a product catalog in three languages,
// extracts structured records from product pages, links non-English records
// to their English baseline entities, persists records as a YAML content
// store, and verifies schema consistency across language variants.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, yaml/, http/).
package herbarium
