package reconcile

import (
	"context"

	"codesync/core/snapshot"

	"go.uber.org/zap"
)

// CodeIndex maps composite keys to snapshot records. It is never modified
// after BuildIndex returns, so it can be shared between runs.
type CodeIndex struct {
	records    map[CompositeKey]snapshot.TypeRecord
	order      []CompositeKey
	duplicates int
	rejected   int
}

// BuildIndex indexes records in input order. The first record for a key wins;
// later ones are logged at debug level and counted as duplicates. Records
// without a type name or code are logged and counted as rejected.
//
// An empty input, or one where every record was rejected, is a ValidationError.
func BuildIndex(records []snapshot.TypeRecord, log *zap.Logger) (*CodeIndex, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(records) == 0 {
		return nil, &ValidationError{Message: "no records"}
	}

	index := &CodeIndex{
		records: make(map[CompositeKey]snapshot.TypeRecord, len(records)),
		order:   make([]CompositeKey, 0, len(records)),
	}

	for i, record := range records {
		if record.TypeName == "" || !HasCode(record.Code) {
			index.rejected++
			log.Warn("Skipping incomplete snapshot record",
				zap.Int("position", i),
				zap.String("category", record.Category),
				zap.String("type_name", record.TypeName),
			)
			continue
		}

		record.Category = CategoryLabel(record.Category)
		key := Normalize(record.Category, record.TypeName)
		if kept, exists := index.records[key]; exists {
			index.duplicates++
			log.Debug("Duplicate key found",
				zap.String("key", key.String()),
				zap.String("kept_code", kept.Code),
				zap.String("ignored_code", record.Code),
			)
			continue
		}

		index.records[key] = record
		index.order = append(index.order, key)
	}

	if len(index.records) == 0 {
		return nil, &ValidationError{Message: "no usable records"}
	}

	log.Debug("Built code index",
		zap.Int("records", len(records)),
		zap.Int("keys", len(index.records)),
		zap.Int("duplicates", index.duplicates),
		zap.Int("rejected", index.rejected),
	)

	return index, nil
}

// LoadIndex reads a snapshot from store and indexes it. Parse failures and
// empty snapshots are reported as ValidationError.
func LoadIndex(ctx context.Context, store snapshot.Store, name string, log *zap.Logger) (*CodeIndex, error) {
	data, err := store.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	records, err := snapshot.Decode(snapshot.FormatFor(name), data)
	if err != nil {
		return nil, &ValidationError{Source: name, Message: "could not be parsed", Err: err}
	}

	index, err := BuildIndex(records, log)
	if err != nil {
		if verr, ok := err.(*ValidationError); ok {
			verr.Source = name
		}
		return nil, err
	}
	return index, nil
}

// Lookup returns the record for key.
func (i *CodeIndex) Lookup(key CompositeKey) (snapshot.TypeRecord, bool) {
	record, ok := i.records[key]
	return record, ok
}

// Len returns the number of distinct keys.
func (i *CodeIndex) Len() int {
	return len(i.records)
}

// Keys returns the keys in the order they were first seen.
func (i *CodeIndex) Keys() []CompositeKey {
	keys := make([]CompositeKey, len(i.order))
	copy(keys, i.order)
	return keys
}

// Duplicates returns how many records were discarded because their key was already present.
func (i *CodeIndex) Duplicates() int {
	return i.duplicates
}

// Rejected returns how many records were discarded for missing a type name or code.
func (i *CodeIndex) Rejected() int {
	return i.rejected
}
