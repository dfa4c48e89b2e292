package predclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"risk_service/internal/domain/model"
)

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predecir" {
			t.Errorf("Path = %q, want /predecir", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var req model.PredictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Distrito != "MIRAFLORES" {
			t.Errorf("DISTRITO = %q, want MIRAFLORES", req.Distrito)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Entrada": {"LATITUD": -12.12, "LONGITUD": -77.03, "DISTRITO": "MIRAFLORES", "HORA": 14},
			"PREDICCION": {
				"SEVERIDAD": "ALTA",
				"PROBABILIDAD": "87.5%",
				"PROBABILIDADES": {"ALTA": "87.5%", "BAJA": "12.5%"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	resp, err := client.Predict(context.Background(), model.PredictionRequest{
		Latitud: -12.12, Longitud: -77.03, Distrito: "MIRAFLORES",
	})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if resp.Prediccion.Severidad != "ALTA" {
		t.Errorf("SEVERIDAD = %q, want ALTA", resp.Prediccion.Severidad)
	}
	if resp.Prediccion.Probabilidades.Alta != "87.5%" {
		t.Errorf("PROBABILIDADES.ALTA = %q", resp.Prediccion.Probabilidades.Alta)
	}
	if lat, err := resp.Entrada.Latitud.Float64(); err != nil || lat != -12.12 {
		t.Errorf("Echoed LATITUD = %v (err %v)", lat, err)
	}
}

func TestPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	if _, err := client.Predict(context.Background(), model.PredictionRequest{}); err == nil {
		t.Fatal("Expected an error for a 500 response")
	}
}

func TestHourlyProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predecir/horarios" {
			t.Errorf("Path = %q, want /predecir/horarios", r.URL.Path)
		}
		var req model.HourlyProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Distrito != "BARRANCO" {
			t.Errorf("DISTRITO = %q, want BARRANCO", req.Distrito)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"DISTRITO": "BARRANCO",
			"PROBABILIDADES_HORAS": {"0": 0.05, "8": 0.42}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	resp, err := client.HourlyProfile(context.Background(), "BARRANCO")
	if err != nil {
		t.Fatalf("HourlyProfile failed: %v", err)
	}
	if resp.Distrito != "BARRANCO" {
		t.Errorf("DISTRITO = %q", resp.Distrito)
	}
	if resp.ProbabilidadesHoras["8"] != 0.42 {
		t.Errorf("Hour 8 = %v, want 0.42", resp.ProbabilidadesHoras["8"])
	}
}

func TestPredictInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{truncated`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	if _, err := client.Predict(context.Background(), model.PredictionRequest{}); err == nil {
		t.Fatal("Expected an error for malformed JSON")
	}
}
