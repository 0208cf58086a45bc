// Package catalogdb implements the live catalog on top of a SQL database.
//
// Element types and instances share the catalog_elements table and are told
// apart by the kind column; instances point at their type through type_id.
// Every parameter is a row in catalog_parameters carrying its storage kind,
// a read-only flag and an optional maximum length.
//
// A Session wraps one database transaction. Parameter writes made through a
// session are visible to later reads in the same session and become durable
// on Commit. Elements returned by Catalog.Elements are a read-only view and
// refuse writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Catalog.Database)
//	if err != nil {
//	    return err
//	}
//	if err := catalogdb.Migrate(db); err != nil {
//	    return err
//	}
//	cat := catalogdb.New(db, "Tower", "/projects/tower/catalog.db", logger)
package catalogdb
