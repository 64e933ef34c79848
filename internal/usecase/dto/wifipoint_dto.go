package dto

import (
	"github.com/wifi-cdmx/wifi-api/internal/domain"
)

// WifiPointDTO is the wire representation of a wifi point. DistanceKm
// is only populated by the nearby search.
type WifiPointDTO struct {
	ID         string   `json:"id"`
	Program    string   `json:"program"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Alcaldia   string   `json:"alcaldia"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// ListWifiPointsRequest covers the paginated listing endpoints.
type ListWifiPointsRequest struct {
	Page int    `json:"page" validate:"min=0"`
	Size int    `json:"size" validate:"min=1,max=1000"`
	Sort string `json:"sort"`
}

// NearbyWifiPointsRequest asks for wifi points ranked by distance from
// the given position.
type NearbyWifiPointsRequest struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Page      int     `json:"page" validate:"min=0"`
	Size      int     `json:"size" validate:"min=1,max=1000"`
}

// AlcaldiaWifiPointsRequest asks for the wifi points of one borough.
type AlcaldiaWifiPointsRequest struct {
	Alcaldia string `json:"alcaldia"`
	Page     int    `json:"page" validate:"min=0"`
	Size     int    `json:"size" validate:"min=1,max=1000"`
}

// FromWifiPoint converts a domain wifi point to its DTO.
func FromWifiPoint(p *domain.WifiPoint) WifiPointDTO {
	return WifiPointDTO{
		ID:        p.ID,
		Program:   p.Program,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Alcaldia:  p.Alcaldia,
	}
}

// FromNearbyWifiPoint converts a ranked wifi point, carrying its
// distance along.
func FromNearbyWifiPoint(p *domain.NearbyWifiPoint) WifiPointDTO {
	out := FromWifiPoint(&p.WifiPoint)
	distance := p.DistanceKm
	out.DistanceKm = &distance
	return out
}

// FromWifiPoints converts a slice of domain points.
func FromWifiPoints(points []*domain.WifiPoint) []WifiPointDTO {
	out := make([]WifiPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, FromWifiPoint(p))
	}
	return out
}

// FromNearbyWifiPoints converts a slice of ranked points.
func FromNearbyWifiPoints(points []*domain.NearbyWifiPoint) []WifiPointDTO {
	out := make([]WifiPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, FromNearbyWifiPoint(p))
	}
	return out
}
