package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"risk_service/internal/domain/model"
)

// Jitter applied to nearby scatter points, in degrees.
const nearbyJitter = 0.01

// Modality buckets and their count ranges (exclusive upper bound).
var modalityRanges = []struct {
	name string
	max  int
}{
	{"Colisión", 25},
	{"Atropello", 18},
	{"Despiste", 12},
	{"Vuelco", 8},
	{"Otro", 5},
}

// SyntheticSource generates placeholder risk data. It implements RiskSource
// so the resolver can substitute it wholesale when the remote service fails,
// and tests can seed it for deterministic output.
type SyntheticSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticSource creates a generator from the given seed.
func NewSyntheticSource(seed int64) *SyntheticSource {
	return &SyntheticSource{rng: rand.New(rand.NewSource(seed))}
}

// Predict synthesizes a prediction for the requested point. The severity is
// derived from the random risk so the two never disagree. Address is left
// empty; the resolver fills in the geocoded or placeholder address.
func (s *SyntheticSource) Predict(_ context.Context, req model.PredictionRequest) (*model.PredictionResult, error) {
	s.mu.Lock()
	risk := s.rng.Float64()
	probability := 40 + s.rng.Float64()*55
	s.mu.Unlock()

	severity := SeverityForRisk(risk)
	high := probability
	if severity == SeverityBaja {
		high = 100 - probability
	}
	return &model.PredictionResult{
		Lat:             req.Latitud,
		Lng:             req.Longitud,
		Severity:        severity,
		Probability:     fmt.Sprintf("%.1f%%", probability),
		ProbabilityHigh: fmt.Sprintf("%.1f%%", high),
		ProbabilityLow:  fmt.Sprintf("%.1f%%", 100-high),
		TypeOfRoad:      req.TipoDeVia,
		RoadNetwork:     req.RedVial,
		Departamento:    req.Departamento,
		Provincia:       req.Provincia,
		Distrito:        req.Distrito,
		Risk:            risk,
		Color:           ColorForRisk(risk),
	}, nil
}

// HourlyProfile generates a random 24-hour tally series. Probability stays
// nil: these counts are raw tallies, not percentages.
func (s *SyntheticSource) HourlyProfile(_ context.Context, _ string) ([]model.HourlySeriesPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	series := make([]model.HourlySeriesPoint, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		series[h] = model.HourlySeriesPoint{Hora: h, Count: s.rng.Intn(12)}
	}
	return series, nil
}

// Modalities generates the fixed five-bucket modality series.
func (s *SyntheticSource) Modalities() []model.ModalityPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	points := make([]model.ModalityPoint, 0, len(modalityRanges))
	for _, m := range modalityRanges {
		points = append(points, model.ModalityPoint{
			Modalidad: m.name,
			Count:     s.rng.Intn(m.max),
		})
	}
	return points
}

// NearbyPoints scatters count risk-only markers around the point, each
// within ±0.01° of it.
func (s *SyntheticSource) NearbyPoints(lat, lng float64, count int) []model.RiskPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	points := make([]model.RiskPoint, 0, count)
	for i := 0; i < count; i++ {
		risk := s.rng.Float64()
		points = append(points, model.RiskPoint{
			Lat:   lat + (s.rng.Float64()-0.5)*2*nearbyJitter,
			Lng:   lng + (s.rng.Float64()-0.5)*2*nearbyJitter,
			Risk:  risk,
			Color: ColorForRisk(risk),
		})
	}
	return points
}

// PlaceholderAddress returns a synthetic address for fallback results that
// could not be geocoded.
func (s *SyntheticSource) PlaceholderAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Calle Ficticia %d, Lima", s.rng.Intn(1000))
}
