package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database configured through the environment. When
// DATABASE_DSN is set a MySQL connection is used, otherwise a local sqlite
// file keeps development self-contained. TranslateError is required: the
// apply and feedback paths branch on gorm.ErrDuplicatedKey.
func InitDB() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return gorm.Open(mysql.Open(dsn), cfg)
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "volunteer.db"
	}
	return gorm.Open(sqlite.Open(path), cfg)
}
