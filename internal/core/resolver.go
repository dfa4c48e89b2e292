package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"risk_service/internal/domain/model"
	"risk_service/internal/metrics"
)

// ErrGeocoderUnavailable is returned when no geocoding provider is
// configured. Point selection is disabled entirely in that case.
var ErrGeocoderUnavailable = errors.New("geocoding provider unavailable")

// Defaults substituted when geocoding gave no hint for a field.
const (
	DefaultDepartamento = "LIMA"
	DefaultProvincia    = "LIMA"
	DefaultDistrito     = "MIRAFLORES"
	DefaultTypeOfRoad   = "AVENIDA"
	DefaultRoadNetwork  = "URBANA"
)

// Geocoder resolves coordinates to addresses. Implementations return an
// empty slice (not an error) when the provider knows nothing about a point.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) ([]model.GeocodeResult, error)
}

// RoadLookup finds the nearest mapped road at a point. May return (nil, nil)
// when no road is close enough.
type RoadLookup interface {
	NearestRoad(ctx context.Context, lat, lng float64) (*model.RoadInfo, error)
}

// ResolutionRecorder persists resolved selections.
type ResolutionRecorder interface {
	SaveResolution(ctx context.Context, res *model.Resolution) error
}

// Resolver runs the location-to-risk pipeline: one reverse-geocode, a
// prediction request, an hourly-profile request, and synthetic fallbacks at
// every step. No remote failure is fatal to a resolve.
type Resolver struct {
	geocoder  Geocoder
	roads     RoadLookup
	remote    RiskSource
	synthetic *SyntheticSource
	recorder  ResolutionRecorder

	nearbyCount   int
	failureMsg    string
	hourlyFailMsg string
	log           *slog.Logger
}

// ResolverOptions carries the optional collaborators and messages.
type ResolverOptions struct {
	Roads                RoadLookup
	Recorder             ResolutionRecorder
	NearbyCount          int
	FailureMessage       string
	HourlyFailureMessage string
	Logger               *slog.Logger
}

// NewResolver wires a resolver. geocoder may be nil when the provider is
// unconfigured; remote may be nil to force synthetic output.
func NewResolver(geocoder Geocoder, remote RiskSource, synthetic *SyntheticSource, opts ResolverOptions) *Resolver {
	if opts.NearbyCount <= 0 {
		opts.NearbyCount = 7
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Resolver{
		geocoder:      geocoder,
		roads:         opts.Roads,
		remote:        remote,
		synthetic:     synthetic,
		recorder:      opts.Recorder,
		nearbyCount:   opts.NearbyCount,
		failureMsg:    opts.FailureMessage,
		hourlyFailMsg: opts.HourlyFailureMessage,
		log:           opts.Logger,
	}
}

// Resolve runs the full pipeline for a selected point.
func (r *Resolver) Resolve(ctx context.Context, point model.GeoPoint) (*model.Resolution, error) {
	if r.geocoder == nil {
		return nil, ErrGeocoderUnavailable
	}
	metrics.ResolutionsTotal.Inc()

	address, details, located := r.locate(ctx, point)
	req := model.PredictionRequest{
		Latitud:      point.Lat,
		Longitud:     point.Lng,
		TipoDeVia:    details.TypeOfRoad,
		RedVial:      details.RoadNetwork,
		Departamento: details.Departamento,
		Provincia:    details.Provincia,
		Distrito:     details.Distrito,
	}

	res := &model.Resolution{
		State:     model.StateLoaded,
		CreatedAt: time.Now().UTC(),
	}

	var prediction *model.PredictionResult
	if located && r.remote != nil {
		p, err := r.remote.Predict(ctx, req)
		if err != nil {
			r.log.Warn("prediction_request_failed", "err", err)
		} else {
			prediction = p
		}
	}
	if prediction == nil {
		metrics.PredictionFallbacksTotal.Inc()
		prediction, _ = r.synthetic.Predict(ctx, req)
		if address == "" {
			address = r.synthetic.PlaceholderAddress()
		}
		res.State = model.StateLoadedFallback
		res.Warning = r.failureMsg
	}
	if prediction.Address == "" {
		prediction.Address = address
	}
	res.Prediction = *prediction

	res.Nearby = r.synthetic.NearbyPoints(point.Lat, point.Lng, r.nearbyCount)
	res.Hourly = r.hourlySeries(ctx, prediction.Distrito, res)
	res.Modalities = r.synthetic.Modalities()

	if r.recorder != nil {
		if err := r.recorder.SaveResolution(ctx, res); err != nil {
			r.log.Warn("resolution_save_failed", "err", err)
		}
	}
	return res, nil
}

// NearbyPoints exposes the scatter generator for the map overlay endpoint.
func (r *Resolver) NearbyPoints(lat, lng float64, count int) []model.RiskPoint {
	if count <= 0 {
		count = r.nearbyCount
	}
	return r.synthetic.NearbyPoints(lat, lng, count)
}

// locate reverse-geocodes the point once and derives both the display
// address and the location details from the same call. A failed or empty
// geocode yields empty results and located=false; the pipeline continues.
func (r *Resolver) locate(ctx context.Context, point model.GeoPoint) (address string, details model.LocationDetails, located bool) {
	results, err := r.geocoder.ReverseGeocode(ctx, point.Lat, point.Lng)
	if err != nil {
		r.log.Warn("reverse_geocode_failed", "err", err)
	}
	if len(results) == 0 {
		metrics.GeocodeEmptyTotal.Inc()
		return "", applyLocationDefaults(model.LocationDetails{}), false
	}

	address = results[0].FormattedAddress
	details = ExtractLocationDetails(results[0])
	if details.TypeOfRoad == "" && r.roads != nil {
		if road, err := r.roads.NearestRoad(ctx, point.Lat, point.Lng); err != nil {
			r.log.Warn("road_lookup_failed", "err", err)
		} else if road != nil {
			details.TypeOfRoad, details.RoadNetwork = ClassifyHighway(road.Highway)
		}
	}
	return address, applyLocationDefaults(details), true
}

// hourlySeries fetches the remote hourly profile for the district, falling
// back to a random series and a chart-scoped warning on failure.
func (r *Resolver) hourlySeries(ctx context.Context, distrito string, res *model.Resolution) []model.HourlySeriesPoint {
	if r.remote != nil && distrito != "" {
		series, err := r.remote.HourlyProfile(ctx, distrito)
		if err == nil {
			return series
		}
		r.log.Warn("hourly_request_failed", "distrito", distrito, "err", err)
	}
	metrics.HourlyFallbacksTotal.Inc()
	res.HourlyWarning = r.hourlyFailMsg
	series, _ := r.synthetic.HourlyProfile(ctx, distrito)
	return series
}

func applyLocationDefaults(d model.LocationDetails) model.LocationDetails {
	if d.Departamento == "" {
		d.Departamento = DefaultDepartamento
	}
	if d.Provincia == "" {
		d.Provincia = DefaultProvincia
	}
	if d.Distrito == "" {
		d.Distrito = DefaultDistrito
	}
	if d.TypeOfRoad == "" {
		d.TypeOfRoad = DefaultTypeOfRoad
	}
	if d.RoadNetwork == "" {
		d.RoadNetwork = DefaultRoadNetwork
	}
	return d
}
