// Package codes implements the classification code operations of codesync.
//
// # Operations
//
//   - Export: project element types with a code into snapshot records.
//   - Import: apply a snapshot to the catalog through the reconcile engine.
//   - Derive names: write "code_description" of each instance's type into
//     the instance's full name parameter.
//
// The Service serializes operations that open a catalog session, coalesces
// concurrent exports and caches built code indices per snapshot revision.
// The Handler exposes the operations over HTTP and Feature plugs them into
// the loader.
package codes
