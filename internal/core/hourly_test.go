package core

import (
	"testing"

	"risk_service/internal/domain/model"
)

func TestTransformHourlyProfile(t *testing.T) {
	resp := model.HourlyProfileResponse{
		Distrito: "MIRAFLORES",
		ProbabilidadesHoras: map[string]float64{
			"0":  0.05,
			"8":  0.42,
			"17": 0.666,
			"23": 0.9,
		},
	}

	series := TransformHourlyProfile(resp)
	if len(series) != HoursPerDay {
		t.Fatalf("Expected %d points, got %d", HoursPerDay, len(series))
	}

	for i, p := range series {
		if p.Hora != i {
			t.Errorf("Point %d has hora %d, hours must be ascending", i, p.Hora)
		}
		if p.Probability == nil {
			t.Errorf("Point %d has nil probability, remote series must carry it", i)
		}
	}

	if series[8].Count != 42 {
		t.Errorf("Hour 8 count = %d, want 42", series[8].Count)
	}
	if series[17].Count != 67 {
		t.Errorf("Hour 17 count = %d, want 67 (rounded)", series[17].Count)
	}
	if series[1].Count != 0 || *series[1].Probability != 0 {
		t.Errorf("Missing hour 1 should be zero, got count=%d prob=%v", series[1].Count, *series[1].Probability)
	}
	if *series[23].Probability != 0.9 {
		t.Errorf("Hour 23 probability = %v, want 0.9", *series[23].Probability)
	}
}

func TestTransformHourlyProfileIsPure(t *testing.T) {
	resp := model.HourlyProfileResponse{
		ProbabilidadesHoras: map[string]float64{"12": 0.33},
	}
	a := TransformHourlyProfile(resp)
	b := TransformHourlyProfile(resp)
	for i := range a {
		if a[i].Hora != b[i].Hora || a[i].Count != b[i].Count || *a[i].Probability != *b[i].Probability {
			t.Fatalf("Repeated transform diverged at hour %d", i)
		}
	}
}

func TestTransformHourlyProfileEmptyMap(t *testing.T) {
	series := TransformHourlyProfile(model.HourlyProfileResponse{})
	if len(series) != HoursPerDay {
		t.Fatalf("Expected %d points, got %d", HoursPerDay, len(series))
	}
	for _, p := range series {
		if p.Count != 0 {
			t.Errorf("Hour %d count = %d, want 0 for empty map", p.Hora, p.Count)
		}
	}
}
