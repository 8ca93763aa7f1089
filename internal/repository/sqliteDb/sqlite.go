package sqliteDb

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/sovietmap/tileserve.git/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type SQLiteRepository struct {
	Db *sql.DB
}

func New(dbPath string) (*SQLiteRepository, error) {
	// Ensure the directory exists
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}

	// Open SQLite database with WAL journaling and timeout settings
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// Verify database connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	// Create tables if they don't exist
	if err := initDB(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize database")
	}

	return &SQLiteRepository{Db: db}, nil
}

func initDB(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS requests (
			id INTEGER PRIMARY KEY,
			time DATETIME NOT NULL,
			remote_addr TEXT,
			method TEXT,
			path TEXT,
			status INTEGER,
			range_kind TEXT,
			range_header TEXT,
			content_type TEXT,
			bytes_written INTEGER DEFAULT 0,
			duration_us INTEGER DEFAULT 0
		)
	`)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.Db.Close()
}

func (r *SQLiteRepository) SaveRecord(record models.RequestRecord) error {
	_, err := r.Db.Exec(
		"INSERT INTO requests (time, remote_addr, method, path, status, range_kind, range_header, content_type, bytes_written, duration_us) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.Time,
		record.RemoteAddr,
		record.Method,
		record.Path,
		record.Status,
		string(record.RangeKind),
		record.RangeHeader,
		record.ContentType,
		record.BytesWritten,
		record.Duration.Microseconds(),
	)
	if err != nil {
		log.Errorf("Error saving request record: %v", err)
		return err
	}
	return nil
}

func (r *SQLiteRepository) RecentRecords(limit int) ([]models.RequestRecord, error) {
	rows, err := r.Db.Query(
		"SELECT id, time, remote_addr, method, path, status, range_kind, range_header, content_type, bytes_written, duration_us FROM requests ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RequestRecord
	for rows.Next() {
		var record models.RequestRecord
		var rangeKind string
		var durationUs int64
		err := rows.Scan(
			&record.Id,
			&record.Time,
			&record.RemoteAddr,
			&record.Method,
			&record.Path,
			&record.Status,
			&rangeKind,
			&record.RangeHeader,
			&record.ContentType,
			&record.BytesWritten,
			&durationUs,
		)
		if err != nil {
			return nil, err
		}
		record.RangeKind = models.RangeKind(rangeKind)
		record.Duration = time.Duration(durationUs) * time.Microsecond
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *SQLiteRepository) Stats() (models.ServerStats, error) {
	var stats models.ServerStats
	rows, err := r.Db.Query("SELECT status, COUNT(*), COALESCE(SUM(bytes_written), 0) FROM requests GROUP BY status")
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count, bytes int64
		if err := rows.Scan(&status, &count, &bytes); err != nil {
			return stats, err
		}
		stats.TotalRequests += count
		stats.BytesServed += bytes
		switch {
		case status == 200:
			stats.FullResponses += count
		case status == 206:
			stats.PartialResponses += count
		case status == 404:
			stats.NotFound += count
		case status == 405:
			stats.MethodRejected += count
		case status == 416:
			stats.Unsatisfiable += count
		case status >= 500:
			stats.ServerErrors += count
		}
	}
	return stats, rows.Err()
}
