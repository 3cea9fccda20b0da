// Package watchscout retrieves luxury watch offers from marketplace search
// results. It builds search requests, detects the total listing count,
// walks the result pages, extracts each page's embedded structured data,
// and normalizes the offers into a single table.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package watchscout
