package repository

import "github.com/sovietmap/tileserve.git/internal/models"

type AccessLogRepository interface {
	SaveRecord(record models.RequestRecord) error
	RecentRecords(limit int) ([]models.RequestRecord, error)
	Stats() (models.ServerStats, error)
	Close() error
}
