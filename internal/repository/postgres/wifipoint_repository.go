package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
)

// uniqueViolation is the SQLSTATE postgres reports for duplicate keys.
const uniqueViolation = "23505"

// sortColumns whitelists the ORDER BY targets. Anything not listed
// falls back to the primary key, so no caller input ever reaches the
// query text directly.
var sortColumns = map[string]string{
	repository.SortFieldID:        "punto_id",
	repository.SortFieldProgram:   "programa",
	repository.SortFieldAlcaldia:  "alcaldia",
	repository.SortFieldLatitude:  "latitud",
	repository.SortFieldLongitude: "longitud",
}

type wifiPointRepository struct {
	db        *sqlx.DB
	logger    *zap.Logger
	chunkSize int
}

func NewWifiPointRepository(db *DB, chunkSize int) repository.WifiPointRepository {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &wifiPointRepository{
		db:        db.DB,
		logger:    db.logger,
		chunkSize: chunkSize,
	}
}

func (r *wifiPointRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM wifi_points`); err != nil {
		r.logger.Error("Failed to count wifi points", zap.Error(err))
		return 0, apperrors.ErrDatabaseError
	}
	return count, nil
}

// BulkInsert writes all points in one transaction, batching the INSERT
// statements so the driver never sees more bind parameters than it can
// take. A unique violation anywhere rolls back the whole load.
func (r *wifiPointRepository) BulkInsert(ctx context.Context, points []*domain.WifiPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO wifi_points (punto_id, programa, latitud, longitud, alcaldia)
		VALUES (:punto_id, :programa, :latitud, :longitud, :alcaldia)
	`

	for start := 0; start < len(points); start += r.chunkSize {
		end := start + r.chunkSize
		if end > len(points) {
			end = len(points)
		}

		if _, err := tx.NamedExecContext(ctx, query, points[start:end]); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return apperrors.ErrDuplicateWifiPoint
			}
			r.logger.Error("Failed to bulk insert wifi points",
				zap.Int("offset", start),
				zap.Error(err))
			return apperrors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit bulk insert", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}

func (r *wifiPointRepository) GetByID(ctx context.Context, id string) (*domain.WifiPoint, error) {
	query := `
		SELECT punto_id, programa, latitud, longitud, alcaldia, created_at
		FROM wifi_points
		WHERE punto_id = $1
	`

	var point domain.WifiPoint
	err := r.db.GetContext(ctx, &point, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.WifiPointNotFound(id)
	}
	if err != nil {
		r.logger.Error("Failed to get wifi point", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &point, nil
}

func (r *wifiPointRepository) FindByAlcaldia(ctx context.Context, alcaldia string, offset, limit int) ([]*domain.WifiPoint, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM wifi_points WHERE LOWER(alcaldia) = LOWER($1)`, alcaldia)
	if err != nil {
		r.logger.Error("Failed to count wifi points by alcaldia",
			zap.String("alcaldia", alcaldia),
			zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}

	query := `
		SELECT punto_id, programa, latitud, longitud, alcaldia, created_at
		FROM wifi_points
		WHERE LOWER(alcaldia) = LOWER($1)
		ORDER BY punto_id
		LIMIT $2 OFFSET $3
	`

	var points []*domain.WifiPoint
	if err := r.db.SelectContext(ctx, &points, query, alcaldia, limit, offset); err != nil {
		r.logger.Error("Failed to find wifi points by alcaldia",
			zap.String("alcaldia", alcaldia),
			zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}

	return points, total, nil
}

func (r *wifiPointRepository) FindAll(ctx context.Context, offset, limit int, sortField string) ([]*domain.WifiPoint, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM wifi_points`); err != nil {
		r.logger.Error("Failed to count wifi points", zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}

	column, ok := sortColumns[sortField]
	if !ok {
		column = "punto_id"
	}

	query := fmt.Sprintf(`
		SELECT punto_id, programa, latitud, longitud, alcaldia, created_at
		FROM wifi_points
		ORDER BY %s, punto_id
		LIMIT $1 OFFSET $2
	`, column)

	var points []*domain.WifiPoint
	if err := r.db.SelectContext(ctx, &points, query, limit, offset); err != nil {
		r.logger.Error("Failed to list wifi points", zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}

	return points, total, nil
}

// All loads the entire table for in-memory distance ranking. The
// dataset tops out at a few tens of thousands of rows, well within what
// a single query comfortably returns.
func (r *wifiPointRepository) All(ctx context.Context) ([]*domain.WifiPoint, error) {
	query := `
		SELECT punto_id, programa, latitud, longitud, alcaldia, created_at
		FROM wifi_points
		ORDER BY punto_id
	`

	var points []*domain.WifiPoint
	if err := r.db.SelectContext(ctx, &points, query); err != nil {
		r.logger.Error("Failed to load wifi points", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return points, nil
}
