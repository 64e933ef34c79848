package domain

import "time"

// WifiPoint represents a free WiFi access point in Mexico City.
// Points are created once by the ingestion loader and never mutated afterwards.
type WifiPoint struct {
	ID        string    `json:"id" db:"punto_id"`
	Program   string    `json:"program" db:"programa"`
	Latitude  float64   `json:"latitude" db:"latitud"`
	Longitude float64   `json:"longitude" db:"longitud"`
	Alcaldia  string    `json:"alcaldia" db:"alcaldia"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// NearbyWifiPoint is a WifiPoint annotated with the great-circle distance
// from a reference coordinate. Query-scoped, never persisted.
type NearbyWifiPoint struct {
	WifiPoint
	DistanceKm float64 `json:"distance_km"`
}
