package config

import (
	"github.com/sovietmap/tileserve.git/internal/repository/sqliteDb"
	log "github.com/sirupsen/logrus"
)

var DB *sqliteDb.SQLiteRepository

// GetDB lazily opens the access-log database and then reuses it for
// the lifetime of the process: the path from the first call wins and
// later calls ignore theirs. There is one access log per server, so
// every caller passes the same configured path.
func GetDB(dbPath string) *sqliteDb.SQLiteRepository {
	if DB == nil {
		instance, err := sqliteDb.New(dbPath)
		if err != nil {
			log.Fatalf("Error connecting to sqlite3 database: %s", err)
		}
		DB = instance
	}
	return DB
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
