// Package domain defines the core business types for the campaign
// results analyzer.
//
// Types in this package are pure value objects with no behavior beyond
// validation helpers, no HTTP concerns, and no imports from other
// internal/ packages. They are the shared language between the ingest,
// filter, analytics, export, and session layers.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No http.Request, no context.Context in struct fields
//   - JSON tags are allowed (they're metadata, not behavior)
//   - Validation methods are allowed (they're pure functions on the type)
//   - Constants and enums belong here
package domain
