package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/pagination"
)

// Repository keeps wifi points in a map guarded by a RWMutex. It backs
// local development (DB_DRIVER=memory) and the test suites, with the
// same behavior contract as the postgres implementation.
type Repository struct {
	mu     sync.RWMutex
	points map[string]domain.WifiPoint
}

func NewWifiPointRepository() *Repository {
	return &Repository{
		points: make(map[string]domain.WifiPoint),
	}
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.points), nil
}

// BulkInsert is all or nothing: a duplicate id, inside the batch or
// against already stored points, rejects the whole batch.
func (r *Repository) BulkInsert(ctx context.Context, points []*domain.WifiPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[string]domain.WifiPoint, len(points))
	for _, point := range points {
		if _, exists := r.points[point.ID]; exists {
			return apperrors.ErrDuplicateWifiPoint
		}
		if _, exists := staged[point.ID]; exists {
			return apperrors.ErrDuplicateWifiPoint
		}
		stored := *point
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = time.Now()
		}
		staged[point.ID] = stored
	}

	for id, point := range staged {
		r.points[id] = point
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.WifiPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	point, ok := r.points[id]
	if !ok {
		return nil, apperrors.WifiPointNotFound(id)
	}
	return &point, nil
}

func (r *Repository) FindByAlcaldia(ctx context.Context, alcaldia string, offset, limit int) ([]*domain.WifiPoint, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*domain.WifiPoint
	for _, point := range r.points {
		if strings.EqualFold(point.Alcaldia, alcaldia) {
			p := point
			matches = append(matches, &p)
		}
	}
	sortPoints(matches, repository.SortFieldID)

	return pagination.Window(matches, offset, limit), len(matches), nil
}

func (r *Repository) FindAll(ctx context.Context, offset, limit int, sortField string) ([]*domain.WifiPoint, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.snapshot()
	sortPoints(all, sortField)

	return pagination.Window(all, offset, limit), len(all), nil
}

func (r *Repository) All(ctx context.Context) ([]*domain.WifiPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.snapshot()
	sortPoints(all, repository.SortFieldID)
	return all, nil
}

// snapshot copies every stored point so callers can never mutate the map
// through a returned pointer. Callers must hold at least a read lock.
func (r *Repository) snapshot() []*domain.WifiPoint {
	all := make([]*domain.WifiPoint, 0, len(r.points))
	for _, point := range r.points {
		p := point
		all = append(all, &p)
	}
	return all
}

func sortPoints(points []*domain.WifiPoint, sortField string) {
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		switch sortField {
		case repository.SortFieldProgram:
			if a.Program != b.Program {
				return a.Program < b.Program
			}
		case repository.SortFieldAlcaldia:
			if a.Alcaldia != b.Alcaldia {
				return a.Alcaldia < b.Alcaldia
			}
		case repository.SortFieldLatitude:
			if a.Latitude != b.Latitude {
				return a.Latitude < b.Latitude
			}
		case repository.SortFieldLongitude:
			if a.Longitude != b.Longitude {
				return a.Longitude < b.Longitude
			}
		}
		return a.ID < b.ID
	})
}
