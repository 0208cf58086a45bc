package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"codesync/core/config"
	"codesync/core/reconcile"
	"codesync/core/snapshot"

	"go.uber.org/zap"
)

// Prints the composite keys of a snapshot and probes a category/type pair.
//
//	go run ./cmd/debug_index Tower_TypeCodes.json [category type]
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_index <snapshot> [category type]")
	}
	name := os.Args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}

	// Debug runs always read from disk; object snapshots can be downloaded first.
	store := snapshot.NewFileStore(cfg.Snapshot.Dir)
	ctx := context.Background()

	fmt.Println("=== Index ===")
	index, err := reconcile.LoadIndex(ctx, store, name, l)
	if err != nil {
		log.Fatal(err)
	}
	for _, key := range index.Keys() {
		record, _ := index.Lookup(key)
		fmt.Printf("%-60s %s\n", key, record.Code)
	}
	fmt.Printf("\nKeys: %d, duplicates ignored: %d, incomplete ignored: %d\n",
		index.Len(), index.Duplicates(), index.Rejected())

	if len(os.Args) < 4 {
		return
	}

	fmt.Println("\n=== Probe ===")
	category := reconcile.CategoryLabel(os.Args[2])
	key := reconcile.Normalize(category, os.Args[3])
	fmt.Printf("Key: %s\n", key)
	if record, ok := index.Lookup(key); ok {
		fmt.Printf("FOUND: %s|%s -> %s\n", record.Category, record.TypeName, record.Code)
	} else {
		fmt.Println("NOT FOUND")
	}
}
