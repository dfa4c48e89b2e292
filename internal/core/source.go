package core

import (
	"context"

	"risk_service/internal/domain/model"
)

// RiskSource produces prediction data for a point. The remote implementation
// talks to the prediction service; the synthetic one generates placeholder
// data. The resolver composes the two so every remote failure degrades into
// synthetic output instead of aborting.
type RiskSource interface {
	Predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResult, error)
	HourlyProfile(ctx context.Context, distrito string) ([]model.HourlySeriesPoint, error)
}

// PredictionAPI is the wire-level client for the external prediction
// service, implemented in internal/infrastructure/predclient.
type PredictionAPI interface {
	Predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResponse, error)
	HourlyProfile(ctx context.Context, distrito string) (*model.HourlyProfileResponse, error)
}

// RemoteSource adapts a PredictionAPI into a RiskSource by normalizing its
// wire responses.
type RemoteSource struct {
	api PredictionAPI
}

func NewRemoteSource(api PredictionAPI) *RemoteSource {
	return &RemoteSource{api: api}
}

func (s *RemoteSource) Predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResult, error) {
	resp, err := s.api.Predict(ctx, req)
	if err != nil {
		return nil, err
	}
	result := NormalizePrediction(req, *resp)
	return &result, nil
}

func (s *RemoteSource) HourlyProfile(ctx context.Context, distrito string) ([]model.HourlySeriesPoint, error) {
	resp, err := s.api.HourlyProfile(ctx, distrito)
	if err != nil {
		return nil, err
	}
	return TransformHourlyProfile(*resp), nil
}
