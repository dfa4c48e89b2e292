package model

import "encoding/json"

// Wire types for the external prediction service. Field names follow the
// service's own JSON contract and are not renamed.

// PredictionRequest is the body of POST /predecir.
type PredictionRequest struct {
	Latitud      float64 `json:"LATITUD"`
	Longitud     float64 `json:"LONGITUD"`
	TipoDeVia    string  `json:"TIPO_DE_VIA"`
	RedVial      string  `json:"RED_VIAL"`
	Departamento string  `json:"DEPARTAMENTO"`
	Provincia    string  `json:"PROVINCIA"`
	Distrito     string  `json:"DISTRITO"`
}

// PredictionResponse is the body returned by POST /predecir.
type PredictionResponse struct {
	Entrada    PredictionEcho `json:"Entrada"`
	Prediccion Prediccion     `json:"PREDICCION"`
}

// PredictionEcho is the service's echo of the submitted input. Numeric
// fields arrive as numbers or strings depending on the service version, so
// they are held as json.Number and parsed during normalization.
type PredictionEcho struct {
	Latitud      json.Number `json:"LATITUD"`
	Longitud     json.Number `json:"LONGITUD"`
	TipoDeVia    string      `json:"TIPO_DE_VIA"`
	RedVial      string      `json:"RED_VIAL"`
	Departamento string      `json:"DEPARTAMENTO"`
	Provincia    string      `json:"PROVINCIA"`
	Distrito     string      `json:"DISTRITO"`
	Hora         json.Number `json:"HORA"`
}

// Prediccion carries the model output: a categorical severity plus
// percentage strings.
type Prediccion struct {
	Severidad      string         `json:"SEVERIDAD"`
	Probabilidad   string         `json:"PROBABILIDAD"`
	Probabilidades Probabilidades `json:"PROBABILIDADES"`
}

// Probabilidades holds the per-class percentage strings.
type Probabilidades struct {
	Alta string `json:"ALTA"`
	Baja string `json:"BAJA"`
}

// HourlyProfileRequest is the body of POST /predecir/horarios.
type HourlyProfileRequest struct {
	Distrito string `json:"DISTRITO"`
}

// HourlyProfileResponse maps hour keys "0".."23" to probabilities in [0,1].
// Missing hours are treated as zero.
type HourlyProfileResponse struct {
	Distrito            string             `json:"DISTRITO"`
	ProbabilidadesHoras map[string]float64 `json:"PROBABILIDADES_HORAS"`
}
