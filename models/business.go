package models

import (
	"errors"
	"math"
)

// Business is a place recommended by the backend (restaurant, venue, attraction, hotel).
type Business struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	ReviewCount int       `json:"reviewCount,omitempty"`
	PriceLevel  string    `json:"priceLevel,omitempty"` // "$" .. "$$$$"
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Distance    float64   `json:"distance,omitempty"` // metres from the user's location
	Location    *Location `json:"location,omitempty"`
}

// Location is an already-resolved place. Geocoding happens upstream.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	ZipCode   string  `json:"zipCode,omitempty"`
	Country   string  `json:"country,omitempty"`
}

var (
	ErrInvalidLatitude  = errors.New("latitude must be a finite number in [-90, 90]")
	ErrInvalidLongitude = errors.New("longitude must be a finite number in [-180, 180]")
)

// Validate checks the coordinate ranges only.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || math.IsInf(l.Latitude, 0) || l.Latitude < -90 || l.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if math.IsNaN(l.Longitude) || math.IsInf(l.Longitude, 0) || l.Longitude < -180 || l.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// Preferences are the user's standing tastes, forwarded with every dispatch.
type Preferences struct {
	Cuisines    []string `json:"cuisines,omitempty"`
	PriceRange  string   `json:"priceRange,omitempty"`
	Dietary     []string `json:"dietary,omitempty"`
	Ambience    []string `json:"ambience,omitempty"`
	TravelStyle string   `json:"travelStyle,omitempty"`
}
