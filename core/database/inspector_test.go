package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE products (id INTEGER PRIMARY KEY, GTIN TEXT, name TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "products")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["gtin"])

	// PRAGMA table_info returns no rows for an unknown table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)

	missing, err := MissingColumns(db, "products", "gtin", "Name", "price")
	require.NoError(t, err)
	assert.Equal(t, []string{"price"}, missing)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("GTIN", "VARCHAR(14)", "NO", "PRI", nil, "").
		AddRow("name", "TEXT", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `products`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "products")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "gtin", columns[0].Field)
	assert.Equal(t, "varchar(14)", columns[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
