package models

import "time"

// Transport modes accepted on eco-routes.
const (
	TransportWalking         = "walking"
	TransportCycling         = "cycling"
	TransportPublicTransport = "public_transport"
	TransportElectricVehicle = "electric_vehicle"
	TransportHybridVehicle   = "hybrid_vehicle"
)

// TransportModes lists the allowed modes in a stable order.
var TransportModes = []string{
	TransportWalking,
	TransportCycling,
	TransportPublicTransport,
	TransportElectricVehicle,
	TransportHybridVehicle,
}

// ValidTransportMode reports whether m is one of the allowed modes.
func ValidTransportMode(m string) bool {
	for _, v := range TransportModes {
		if v == m {
			return true
		}
	}
	return false
}

// Location is one endpoint of an eco-route.
type Location struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	Region  string  `json:"region"` // continent code: NA, EU, AS, OC, AF, SA
	City    string  `json:"city"`
}

// Attraction is a point of interest along a route.
type Attraction struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description,omitempty"`
	Lat                  float64 `json:"lat"`
	Lon                  float64 `json:"lon"`
	CulturalSignificance string  `json:"cultural_significance,omitempty"`
}

// EcoRoute is a recorded journey with its estimated carbon savings.
type EcoRoute struct {
	ID            string       `json:"id"`
	Start         Location     `json:"start_point"`
	End           Location     `json:"end_point"`
	CarbonSaved   float64      `json:"carbon_saved"`   // kg CO2 vs. driving
	Distance      float64      `json:"distance"`       // km
	TransportMode string       `json:"transport_mode"` // see TransportModes
	EstimatedTime int          `json:"estimated_time"` // minutes
	Attractions   []Attraction `json:"attractions,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
