package testhelpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
)

// SampleWifiPoints returns a small deterministic dataset spanning three
// alcaldias around the city center.
func SampleWifiPoints() []*domain.WifiPoint {
	return []*domain.WifiPoint{
		{ID: "100", Program: "Red WiFi", Latitude: 19.4326, Longitude: -99.1332, Alcaldia: "Cuauhtémoc"},
		{ID: "101", Program: "Red WiFi", Latitude: 19.4340, Longitude: -99.1410, Alcaldia: "Cuauhtémoc"},
		{ID: "102", Program: "C5", Latitude: 19.3556, Longitude: -99.1626, Alcaldia: "Coyoacán"},
		{ID: "103", Program: "Red WiFi", Latitude: 19.3000, Longitude: -99.1700, Alcaldia: "Tlalpan"},
		{ID: "104", Program: "Red WiFi", Latitude: 19.4950, Longitude: -99.1190, Alcaldia: "Gustavo A. Madero"},
	}
}

// SeedWifiPoints inserts the given points directly, bypassing the
// repository under test.
func SeedWifiPoints(t *testing.T, tdb *TestDB, points []*domain.WifiPoint) {
	t.Helper()

	query := `
		INSERT INTO wifi_points (punto_id, programa, latitud, longitud, alcaldia)
		VALUES (:punto_id, :programa, :latitud, :longitud, :alcaldia)
	`
	_, err := tdb.DB.NamedExecContext(context.Background(), query, points)
	require.NoError(t, err, "failed to seed wifi points")
}
