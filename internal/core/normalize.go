package core

import "risk_service/internal/domain/model"

// NormalizePrediction folds the service's response into the display record.
// The echoed input is treated as authoritative for location: coordinates and
// administrative fields from the echo override the submitted request
// whenever they parse. Pure function, safe to call repeatedly.
func NormalizePrediction(req model.PredictionRequest, resp model.PredictionResponse) model.PredictionResult {
	lat, lng := req.Latitud, req.Longitud
	if v, err := resp.Entrada.Latitud.Float64(); err == nil {
		lat = v
	}
	if v, err := resp.Entrada.Longitud.Float64(); err == nil {
		lng = v
	}

	risk := RiskForSeverity(resp.Prediccion.Severidad)
	return model.PredictionResult{
		Lat:             lat,
		Lng:             lng,
		Severity:        resp.Prediccion.Severidad,
		Probability:     resp.Prediccion.Probabilidad,
		ProbabilityHigh: resp.Prediccion.Probabilidades.Alta,
		ProbabilityLow:  resp.Prediccion.Probabilidades.Baja,
		TypeOfRoad:      coalesce(resp.Entrada.TipoDeVia, req.TipoDeVia),
		RoadNetwork:     coalesce(resp.Entrada.RedVial, req.RedVial),
		Departamento:    coalesce(resp.Entrada.Departamento, req.Departamento),
		Provincia:       coalesce(resp.Entrada.Provincia, req.Provincia),
		Distrito:        coalesce(resp.Entrada.Distrito, req.Distrito),
		Risk:            risk,
		Color:           ColorForRisk(risk),
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
