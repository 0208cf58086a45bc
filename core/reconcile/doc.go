// Package reconcile re-applies classification codes from a snapshot onto a
// live catalog.
//
// # Architecture
//
// The package consists of four parts:
//
// 1. Key normalizer: Normalize builds the case-insensitive CompositeKey
//    ("category|type name", Unicode case folded) used both to build and to
//    probe the index.
//
// 2. Code index: BuildIndex turns snapshot records into an immutable map from
//    CompositeKey to record. On a key collision the first record wins and the
//    rest are counted as duplicates.
//
// 3. Engine: Run walks the catalog's element types inside a single mutation
//    session, looks each one up in the index and writes the code when it
//    differs. Every element gets an explicit Outcome. Failures on one element
//    never stop the walk; only structural failures (session, enumeration,
//    commit) abort and roll back.
//
// 4. Reporter: Summarize aggregates outcomes into a Summary, and
//    Summary.Format renders it with the problem list capped for display.
//
// An IndexCache keeps built indices for the HTTP server, keyed by snapshot
// name and revision.
//
// # Usage Example
//
//	index, err := reconcile.LoadIndex(ctx, store, "Tower_TypeCodes.json", log)
//	if err != nil {
//	    return err
//	}
//
//	summary, err := reconcile.Run(ctx, cat, index, reconcile.Options{Logger: log})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(summary.Format(reconcile.MaxDisplayedProblems))
package reconcile
