// Package database opens the catalog database and inspects its schema.
//
// Connect wraps GORM and supports two drivers: mysql for a shared catalog
// server and sqlite for a catalog kept in a single local file. The
// inspector reads column definitions straight from the server so schema
// checks see exactly what is deployed.
//
//	db, err := database.Connect(cfg.Catalog.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "catalog_parameters", []string{"value"})
package database
