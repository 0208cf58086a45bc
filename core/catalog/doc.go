// Package catalog defines the abstraction through which codesync talks to a
// live catalog of typed elements.
//
// A catalog holds two kinds of elements:
//   - Element types (type-level entries) that carry the classification code
//     and description parameters.
//   - Instances that reference exactly one element type.
//
// Every accessor can fail per call. Callers that walk a catalog are expected
// to treat a failure on one element as local to that element.
//
// # Sessions
//
// Reads that do not mutate go through Catalog.Elements. Anything that writes
// opens a Session with Catalog.Begin, works through the elements returned by
// the session, and finishes with exactly one Commit or Rollback.
//
// # Implementations
//
// feature/catalogdb provides a SQL implementation backed by GORM. Tests use
// small in-memory fakes.
package catalog
