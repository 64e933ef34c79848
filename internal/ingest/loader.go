package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
)

// Loader performs the one-time bulk import of the wifi dataset. Load is
// idempotent: if the store already holds data it does nothing, and a
// duplicate-key failure from a concurrent import is treated as success.
type Loader struct {
	repo          repository.WifiPointRepository
	logger        *zap.Logger
	progressEvery int
}

func NewLoader(repo repository.WifiPointRepository, logger *zap.Logger, progressEvery int) *Loader {
	if progressEvery <= 0 {
		progressEvery = 5000
	}
	return &Loader{
		repo:          repo,
		logger:        logger,
		progressEvery: progressEvery,
	}
}

// Load reads every row from src and inserts the valid ones in a single
// bulk write. The first row is assumed to be the header. Malformed rows
// are logged and skipped, they never abort the import.
func (l *Loader) Load(ctx context.Context, src Source) error {
	count, err := l.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		l.logger.Info("Dataset already loaded, skipping import",
			zap.Int("existing_points", count))
		return nil
	}

	start := time.Now()
	l.logger.Info("Starting dataset import")

	if _, err := src.Next(); err != nil {
		if err == io.EOF {
			l.logger.Warn("Dataset is empty")
			return nil
		}
		var rowErr *RowError
		if !errors.As(err, &rowErr) {
			return fmt.Errorf("failed to read dataset header: %w", err)
		}
	}

	var (
		points    []*domain.WifiPoint
		processed int
		skipped   int
	)
	for {
		row, err := src.Next()
		if err == io.EOF {
			break
		}
		processed++

		if err == nil {
			var point *domain.WifiPoint
			point, err = NormalizeRow(row, processed+1)
			if err == nil {
				points = append(points, point)
			}
		}
		if err != nil {
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				return fmt.Errorf("failed to read dataset: %w", err)
			}
			skipped++
			l.logger.Warn("Skipping invalid row",
				zap.Int("row", rowErr.Row),
				zap.String("reason", rowErr.Reason))
		}

		if processed%l.progressEvery == 0 {
			l.logger.Info("Import progress",
				zap.Int("processed", processed),
				zap.Int("valid", len(points)),
				zap.Int("skipped", skipped))
		}
	}

	if len(points) == 0 {
		l.logger.Warn("Dataset contained no valid rows",
			zap.Int("processed", processed),
			zap.Int("skipped", skipped))
		return nil
	}

	if err := l.repo.BulkInsert(ctx, points); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateWifiPoint) {
			l.logger.Warn("Dataset was loaded by another instance, skipping import")
			return nil
		}
		return fmt.Errorf("failed to insert wifi points: %w", err)
	}

	l.logger.Info("Dataset import completed",
		zap.Int("inserted", len(points)),
		zap.Int("skipped", skipped),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// LoadFromFile opens path, imports it and closes it.
func (l *Loader) LoadFromFile(ctx context.Context, path string) error {
	src, err := Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	l.logger.Info("Reading dataset", zap.String("path", path))
	return l.Load(ctx, src)
}
