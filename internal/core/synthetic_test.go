package core

import (
	"context"
	"math"
	"regexp"
	"testing"

	"risk_service/internal/domain/model"
)

func TestSyntheticPredict(t *testing.T) {
	s := NewSyntheticSource(1)
	req := model.PredictionRequest{
		Latitud:      -12.12,
		Longitud:     -77.03,
		Departamento: "LIMA",
		Distrito:     "MIRAFLORES",
	}

	for i := 0; i < 50; i++ {
		p, err := s.Predict(context.Background(), req)
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if p.Risk < 0 || p.Risk >= 1 {
			t.Fatalf("Risk %v out of [0,1)", p.Risk)
		}
		if p.Severity != SeverityForRisk(p.Risk) {
			t.Errorf("Severity %q contradicts risk %v", p.Severity, p.Risk)
		}
		if p.Lat != req.Latitud || p.Lng != req.Longitud {
			t.Errorf("Coordinates not echoed: (%v, %v)", p.Lat, p.Lng)
		}
		if p.Distrito != "MIRAFLORES" {
			t.Errorf("Distrito not echoed: %q", p.Distrito)
		}
		if p.Address != "" {
			t.Errorf("Synthetic prediction should leave address empty, got %q", p.Address)
		}
	}
}

func TestSyntheticHourlyProfile(t *testing.T) {
	s := NewSyntheticSource(2)
	series, err := s.HourlyProfile(context.Background(), "MIRAFLORES")
	if err != nil {
		t.Fatalf("HourlyProfile failed: %v", err)
	}
	if len(series) != HoursPerDay {
		t.Fatalf("Expected %d points, got %d", HoursPerDay, len(series))
	}
	for i, p := range series {
		if p.Hora != i {
			t.Errorf("Point %d has hora %d", i, p.Hora)
		}
		if p.Count < 0 || p.Count >= 12 {
			t.Errorf("Hour %d count %d out of [0,12)", i, p.Count)
		}
		if p.Probability != nil {
			t.Errorf("Synthetic series must not carry probabilities, hour %d does", i)
		}
	}
}

func TestSyntheticModalities(t *testing.T) {
	s := NewSyntheticSource(3)
	points := s.Modalities()

	wantOrder := []string{"Colisión", "Atropello", "Despiste", "Vuelco", "Otro"}
	maxima := map[string]int{
		"Colisión": 25, "Atropello": 18, "Despiste": 12, "Vuelco": 8, "Otro": 5,
	}

	if len(points) != len(wantOrder) {
		t.Fatalf("Expected %d modalities, got %d", len(wantOrder), len(points))
	}
	for i, p := range points {
		if p.Modalidad != wantOrder[i] {
			t.Errorf("Modality %d = %q, want %q", i, p.Modalidad, wantOrder[i])
		}
		if p.Count < 0 || p.Count >= maxima[p.Modalidad] {
			t.Errorf("%s count %d out of [0,%d)", p.Modalidad, p.Count, maxima[p.Modalidad])
		}
	}
}

func TestSyntheticNearbyPoints(t *testing.T) {
	s := NewSyntheticSource(4)
	const lat, lng = -12.12, -77.03

	points := s.NearbyPoints(lat, lng, 7)
	if len(points) != 7 {
		t.Fatalf("Expected 7 points, got %d", len(points))
	}
	for i, p := range points {
		if math.Abs(p.Lat-lat) > nearbyJitter || math.Abs(p.Lng-lng) > nearbyJitter {
			t.Errorf("Point %d (%v, %v) outside jitter bounds", i, p.Lat, p.Lng)
		}
		if p.Risk < 0 || p.Risk >= 1 {
			t.Errorf("Point %d risk %v out of [0,1)", i, p.Risk)
		}
		if p.Color != ColorForRisk(p.Risk) {
			t.Errorf("Point %d color %q does not match its risk", i, p.Color)
		}
	}
}

func TestSyntheticDeterministicWithSeed(t *testing.T) {
	a := NewSyntheticSource(42).NearbyPoints(-12, -77, 5)
	b := NewSyntheticSource(42).NearbyPoints(-12, -77, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed diverged at point %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlaceholderAddress(t *testing.T) {
	s := NewSyntheticSource(5)
	pattern := regexp.MustCompile(`^Calle Ficticia \d{1,3}, Lima$`)
	for i := 0; i < 20; i++ {
		addr := s.PlaceholderAddress()
		if !pattern.MatchString(addr) {
			t.Errorf("Placeholder address %q does not match expected form", addr)
		}
	}
}
