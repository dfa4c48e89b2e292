package predclient

import (
	"bytes"
	"encoding/json"
	"context"
	"fmt"
	"net/http"
	"time"

	"risk_service/internal/domain/model"
	"risk_service/internal/metrics"
)

// Client talks to the external accident-prediction service.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Predict submits a prediction request. Any non-2xx status is an error.
func (c *Client) Predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResponse, error) {
	start := time.Now()
	defer func() {
		metrics.PredictionDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}()

	var resp model.PredictionResponse
	if err := c.post(ctx, "/predecir", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HourlyProfile fetches the per-hour probability map for a district.
func (c *Client) HourlyProfile(ctx context.Context, distrito string) (*model.HourlyProfileResponse, error) {
	var resp model.HourlyProfileResponse
	req := model.HourlyProfileRequest{Distrito: distrito}
	if err := c.post(ctx, "/predecir/horarios", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("prediction service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("prediction service returned status: %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(respBody); err != nil {
		return fmt.Errorf("failed to decode prediction response: %w", err)
	}
	return nil
}
