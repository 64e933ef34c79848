package errors

import (
	"fmt"
	"net/http"
)

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Latitude must be between -90 and 90 and longitude between -180 and 180",
		http.StatusBadRequest,
	)

	ErrMissingCoordinates = New(
		"MISSING_COORDINATES",
		"Both lat and lon query parameters are required",
		http.StatusBadRequest,
	)

	ErrInvalidPagination = New(
		"INVALID_PAGINATION",
		"Page must be >= 0 and size between 1 and 1000",
		http.StatusBadRequest,
	)

	ErrInvalidSortField = New(
		"INVALID_SORT_FIELD",
		"Sort must be one of: id, program, alcaldia, latitude, longitude",
		http.StatusBadRequest,
	)

	ErrDuplicateWifiPoint = New(
		"DUPLICATE_WIFI_POINT",
		"WiFi point already exists",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// WifiPointNotFound builds the 404 error for an unknown identifier. The id is
// echoed in the message so clients can see exactly what was asked for.
func WifiPointNotFound(id string) *AppError {
	return &AppError{
		Code:       "WIFI_POINT_NOT_FOUND",
		Message:    fmt.Sprintf("WiFi point not found with ID: %s", id),
		Details:    map[string]interface{}{"id": id},
		StatusCode: http.StatusNotFound,
	}
}
