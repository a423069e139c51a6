package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// Names and types are lowercased.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == DriverSQLite {
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var rows []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range rows {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// MissingColumns returns the names in want that the table does not have,
// in the order given.
func MissingColumns(db *gorm.DB, tableName string, want ...string) ([]string, error) {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c.Field] = struct{}{}
	}

	var missing []string
	for _, w := range want {
		if _, ok := have[strings.ToLower(w)]; !ok {
			missing = append(missing, w)
		}
	}
	return missing, nil
}
