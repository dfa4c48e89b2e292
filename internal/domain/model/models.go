package model

import "time"

// Peru map restriction bounds. Points outside are rejected before any
// external call is made.
const (
	PeruMinLat = -18.35
	PeruMaxLat = -0.04
	PeruMinLng = -81.33
	PeruMaxLng = -68.65
)

// GeoPoint is a user-selected location on the map.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InPeru reports whether the point falls inside the map restriction bounds.
func (p GeoPoint) InPeru() bool {
	return p.Lat >= PeruMinLat && p.Lat <= PeruMaxLat &&
		p.Lng >= PeruMinLng && p.Lng <= PeruMaxLng
}

// LocationDetails are the administrative and road attributes derived from a
// reverse-geocode result. Fields are empty when the geocoder gave no hint;
// defaults are substituted by the resolver, never here.
type LocationDetails struct {
	Departamento string `json:"departamento"`
	Provincia    string `json:"provincia"`
	Distrito     string `json:"distrito"`
	TypeOfRoad   string `json:"type_of_road"`
	RoadNetwork  string `json:"road_network"`
}

// PredictionResult is the normalized prediction shown for a selected point.
type PredictionResult struct {
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Address         string  `json:"address,omitempty"`
	Severity        string  `json:"severity,omitempty"`
	Probability     string  `json:"probability,omitempty"`
	ProbabilityHigh string  `json:"probability_high,omitempty"`
	ProbabilityLow  string  `json:"probability_low,omitempty"`
	TypeOfRoad      string  `json:"type_of_road,omitempty"`
	RoadNetwork     string  `json:"road_network,omitempty"`
	Departamento    string  `json:"departamento,omitempty"`
	Provincia       string  `json:"provincia,omitempty"`
	Distrito        string  `json:"distrito,omitempty"`
	Risk            float64 `json:"risk"`
	Color           string  `json:"color"`
}

// HourlySeriesPoint is one hour of the accident probability profile.
// Probability is set only for remote-derived series, where Count is the
// probability expressed as a whole percentage. Synthetic series leave
// Probability nil and Count is a raw tally.
type HourlySeriesPoint struct {
	Hora        int      `json:"hora"`
	Count       int      `json:"count"`
	Probability *float64 `json:"probability,omitempty"`
}

// ModalityPoint is one accident-modality bucket for the secondary chart.
type ModalityPoint struct {
	Modalidad string `json:"modalidad"`
	Count     int    `json:"count"`
}

// RiskPoint is a risk-only marker scattered around the selected point for
// the map overlay.
type RiskPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Risk  float64 `json:"risk"`
	Color string  `json:"color"`
}

// Resolution states. Closed is represented by the absence of a resolution.
const (
	StateLoading        = "loading"
	StateLoaded         = "loaded"
	StateLoadedFallback = "loaded_fallback"
)

// Resolution is the full outcome of resolving a selected point: the
// prediction, both chart series and the map scatter, plus degradation
// warnings when any remote call fell back to synthetic data.
type Resolution struct {
	Token         string              `json:"token"`
	State         string              `json:"state"`
	Prediction    PredictionResult    `json:"prediction"`
	Hourly        []HourlySeriesPoint `json:"hourly"`
	Modalities    []ModalityPoint     `json:"modalities"`
	Nearby        []RiskPoint         `json:"nearby"`
	Warning       string              `json:"warning,omitempty"`
	HourlyWarning string              `json:"hourly_warning,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// GeocodeResult is one reverse-geocoding match.
type GeocodeResult struct {
	FormattedAddress string             `json:"formatted_address"`
	Components       []AddressComponent `json:"address_components"`
}

// AddressComponent mirrors the geocoding provider's component structure.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// RoadInfo is the nearest mapped road at a point, from OSM.
type RoadInfo struct {
	Name    string
	Highway string
}

// HistoryEntry is a persisted resolution row.
type HistoryEntry struct {
	ID           int64     `db:"id" json:"id"`
	Lat          float64   `db:"lat" json:"lat"`
	Lng          float64   `db:"lng" json:"lng"`
	Address      string    `db:"address" json:"address,omitempty"`
	Severity     string    `db:"severity" json:"severity,omitempty"`
	Risk         float64   `db:"risk" json:"risk"`
	Departamento string    `db:"departamento" json:"departamento,omitempty"`
	Provincia    string    `db:"provincia" json:"provincia,omitempty"`
	Distrito     string    `db:"distrito" json:"distrito,omitempty"`
	Fallback     bool      `db:"fallback" json:"fallback"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
