// Package devdocs provides a local caching client for the DevDocs
// documentation API. It downloads the master index of documentation sets,
// downloads per-set entry listings, persists both as JSON files, and answers
// queries over the cached data.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, fs/).
package devdocs
