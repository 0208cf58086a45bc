// Package snapshot reads and writes portable code snapshots.
//
// A snapshot is an ordered list of TypeRecord values. Two encodings are
// supported and picked by file extension:
//   - .json (default): an indented array of {"Category","TypeName","Code"} objects.
//   - .yaml / .yml: the same list as a YAML sequence.
//
// Snapshots live in a Store. FileStore keeps them on local disk next to the
// catalog; ObjectStore keeps them in an S3/MinIO bucket through core/storage.
//
// # Usage
//
//	store := snapshot.NewFileStore()
//	records, err := snapshot.Load(ctx, store, "Tower_TypeCodes.json")
//	err = snapshot.Save(ctx, store, "Tower_TypeCodes.json", records)
package snapshot
