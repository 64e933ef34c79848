package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	"github.com/wifi-cdmx/wifi-api/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewWifiPointRepositoryForTest creates a wifi point repository with test database and logger
func NewWifiPointRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.WifiPointRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewWifiPointRepository(pgDB, 0)
}
