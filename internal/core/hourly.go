package core

import (
	"math"
	"strconv"

	"risk_service/internal/domain/model"
)

// HoursPerDay is the fixed length of every hourly series.
const HoursPerDay = 24

// TransformHourlyProfile reshapes the service's per-hour probability map
// into an ordered 24-point series. Hours missing from the map get a zero
// probability. Count is the probability as a whole percentage. The function
// is pure: calling it twice on the same response yields identical series.
func TransformHourlyProfile(resp model.HourlyProfileResponse) []model.HourlySeriesPoint {
	series := make([]model.HourlySeriesPoint, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		p := resp.ProbabilidadesHoras[strconv.Itoa(h)]
		prob := p
		series[h] = model.HourlySeriesPoint{
			Hora:        h,
			Count:       int(math.Round(p * 100)),
			Probability: &prob,
		}
	}
	return series
}
