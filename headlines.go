// Package headlines fetches a web page and heuristically extracts the list of
// articles it links to (title, URL, publication date) without any
// site-specific configuration.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gocache/).
package headlines
