package vehicle_models

import "strings"

// VehicleType is one of the three catalog entries a trip can be quoted for.
type VehicleType string

const (
	Standard VehicleType = "standard"
	Premium  VehicleType = "premium"
	SUV      VehicleType = "suv"
)

// VehicleInfo is a static catalog row.
type VehicleInfo struct {
	Type       VehicleType `json:"type"`
	Name       string      `json:"name"`
	Capacity   int         `json:"capacity"`
	Features   []string    `json:"features"`
	PricePerKm int64       `json:"pricePerKm"` // XOF
}

var catalog = []VehicleInfo{
	{
		Type:       Standard,
		Name:       "Berline Confort",
		Capacity:   4,
		Features:   []string{"Climatisation", "Wi-Fi à bord", "Eau fraîche offerte", "Chauffeur bilingue FR/EN"},
		PricePerKm: 350,
	},
	{
		Type:       Premium,
		Name:       "Berline Premium",
		Capacity:   4,
		Features:   []string{"Sièges cuir", "Climatisation bi-zone", "Wi-Fi à bord", "Chargeurs USB", "Accueil personnalisé à l'aéroport"},
		PricePerKm: 500,
	},
	{
		Type:       SUV,
		Name:       "SUV / Minivan 4x4",
		Capacity:   8,
		Features:   []string{"4 roues motrices", "Grand coffre", "Climatisation", "Idéal pistes et Casamance"},
		PricePerKm: 600,
	},
}

// Catalog returns a copy of the vehicle catalog in display order.
func Catalog() []VehicleInfo {
	out := make([]VehicleInfo, len(catalog))
	for i, v := range catalog {
		out[i] = v.clone()
	}
	return out
}

// Lookup finds a catalog entry by type, ignoring case and surrounding spaces.
func Lookup(vehicleType string) (VehicleInfo, bool) {
	t := VehicleType(strings.ToLower(strings.TrimSpace(vehicleType)))
	for _, v := range catalog {
		if v.Type == t {
			return v.clone(), true
		}
	}
	return VehicleInfo{}, false
}

func IsValidType(vehicleType string) bool {
	_, ok := Lookup(vehicleType)
	return ok
}

// Types lists the accepted vehicle type values.
func Types() []string {
	out := make([]string, len(catalog))
	for i, v := range catalog {
		out[i] = string(v.Type)
	}
	return out
}

func (v VehicleInfo) clone() VehicleInfo {
	v.Features = append([]string(nil), v.Features...)
	return v
}
