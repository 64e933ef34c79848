package repository

import (
	"context"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
)

// WifiPointRepository defines the operations the record store must provide.
// The store is write-once: BulkInsert runs during ingestion, everything else
// is read-only.
type WifiPointRepository interface {
	// Count returns the total number of stored WiFi points.
	Count(ctx context.Context) (int, error)

	// BulkInsert stores every point in a single all-or-nothing operation.
	// A unique-key conflict rolls the whole batch back and is reported as
	// errors.ErrDuplicateWifiPoint.
	BulkInsert(ctx context.Context, points []*domain.WifiPoint) error

	// GetByID returns the point with the given identifier, or a not-found
	// error that echoes the identifier.
	GetByID(ctx context.Context, id string) (*domain.WifiPoint, error)

	// FindByAlcaldia returns one page of points in the given borough
	// (case-insensitive match) ordered by id, plus the total match count.
	FindByAlcaldia(ctx context.Context, alcaldia string, offset, limit int) ([]*domain.WifiPoint, int, error)

	// FindAll returns one page of points ordered by sortField, plus the
	// total count. sortField is one of the SortField* constants.
	FindAll(ctx context.Context, offset, limit int, sortField string) ([]*domain.WifiPoint, int, error)

	// All returns every stored point for in-memory scans.
	All(ctx context.Context) ([]*domain.WifiPoint, error)
}

// Sort fields accepted by FindAll. Handlers whitelist against these before
// anything reaches a repository.
const (
	SortFieldID        = "id"
	SortFieldProgram   = "program"
	SortFieldAlcaldia  = "alcaldia"
	SortFieldLatitude  = "latitude"
	SortFieldLongitude = "longitude"
)

// ValidSortField reports whether f is an accepted FindAll sort field.
func ValidSortField(f string) bool {
	switch f {
	case SortFieldID, SortFieldProgram, SortFieldAlcaldia, SortFieldLatitude, SortFieldLongitude:
		return true
	}
	return false
}
