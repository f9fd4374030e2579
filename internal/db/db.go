package db

import (
	"fmt"
	"path/filepath"

	puresqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite     = "sqlite"      // mattn/go-sqlite3 (cgo)
	DriverSQLitePure = "sqlite-pure" // glebarez, bez cgo
	DriverMySQL      = "mysql"
	DriverPostgres   = "postgres"
)

type Handle struct {
	DB   *gorm.DB
	Path string // plik albo DSN
}

// OpenAt – domyślna baza sqlite w katalogu aplikacji
func OpenAt(dir string) (*Handle, error) {
	return Open(DriverSQLite, filepath.Join(dir, "woo2katana.db"))
}

// Open otwiera bazę wg sterownika; dla sqlite dsn to ścieżka pliku
func Open(driver, dsn string) (*Handle, error) {
	var dial gorm.Dialector
	switch driver {
	case DriverSQLite, "":
		dial = sqlite.Open(dsn)
	case DriverSQLitePure:
		dial = puresqlite.Open(dsn)
	case DriverMySQL:
		dial = mysql.Open(dsn)
	case DriverPostgres:
		dial = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("db: unknown driver %q", driver)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Info jeśli chcesz verbose SQL
	})
	if err != nil {
		return nil, fmt.Errorf("db open (%s): %w", driver, err)
	}
	return &Handle{DB: gdb, Path: dsn}, nil
}

func (h *Handle) Close() error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
