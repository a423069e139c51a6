// Package database connects to the optional catalog database that product
// records can be read from.
//
// Connect wraps GORM and supports MySQL and SQLite. GetTableColumns and
// MissingColumns inspect a table before records are read from it, so a
// table without a trade-code column fails early with a clear message.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Catalog database unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "products", "gtin")
package database
