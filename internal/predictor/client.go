// Package predictor talks to the external cyclone formation model. The call
// is best-effort: the feed loop treats any failure as "no prediction
// available" and keeps going.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type request struct {
	CentralPressure    float64 `json:"central_pressure"`
	WindSpeed          float64 `json:"wind_speed"`
	WindShear          float64 `json:"wind_shear"`
	SeaSurfaceTemp     float64 `json:"sea_surface_temp"`
	CloudTopTemp       float64 `json:"cloud_top_temp"`
	Vorticity          float64 `json:"vorticity"`
	ConvectiveActivity float64 `json:"convective_activity"`
	Humidity           float64 `json:"humidity"`
	Precipitation      float64 `json:"precipitation"`
}

type response struct {
	CycloneFormationProbability float64 `json:"cyclone_formation_probability"`
}

// Input carries the nine numeric fields the model expects.
type Input struct {
	CentralPressure    float64
	WindSpeed          float64
	WindShear          float64
	SeaSurfaceTemp     float64
	CloudTopTemp       float64
	Vorticity          float64
	ConvectiveActivity float64
	Humidity           float64
	Precipitation      float64
}

type Client struct {
	url    string
	client *retryablehttp.Client
}

// New builds a predictor client with a hard per-call timeout. The upstream
// model has been observed to hang; the bound keeps the cyclone loop's
// iterations strictly sequential.
func New(url string, timeout time.Duration) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 1
	c.HTTPClient.Timeout = timeout
	c.Logger = nil
	return &Client{url: url, client: c}
}

// Predict posts the reading's fields to the model and returns the formation
// probability. Network errors, non-2xx statuses and malformed bodies all
// surface as errors for the caller to swallow.
func (c *Client) Predict(ctx context.Context, in Input) (float64, error) {
	body, err := json.Marshal(request(in))
	if err != nil {
		return 0, fmt.Errorf("encoding predictor request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("building predictor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predictor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decoding predictor response: %w", err)
	}
	return out.CycloneFormationProbability, nil
}
