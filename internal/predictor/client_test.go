package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Predict(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(response{CycloneFormationProbability: 0.87})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	p, err := c.Predict(context.Background(), Input{
		CentralPressure:    950,
		WindSpeed:          160,
		WindShear:          8,
		SeaSurfaceTemp:     30,
		CloudTopTemp:       -65,
		Vorticity:          0.0008,
		ConvectiveActivity: 0.7,
		Humidity:           90,
		Precipitation:      35,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.87, p)

	// Field names on the wire are snake_case.
	assert.Equal(t, 950.0, got.CentralPressure)
	assert.Equal(t, 160.0, got.WindSpeed)
	assert.Equal(t, -65.0, got.CloudTopTemp)
}

func TestClient_Predict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.Predict(context.Background(), Input{})
	assert.Error(t, err)
}

func TestClient_Predict_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.Predict(context.Background(), Input{})
	assert.Error(t, err)
}

func TestClient_Predict_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Predict(context.Background(), Input{})
	assert.Error(t, err)
}

func TestRequestWireFormat(t *testing.T) {
	body, err := json.Marshal(request{CentralPressure: 980, WindSpeed: 140})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Contains(t, m, "central_pressure")
	assert.Contains(t, m, "wind_speed")
	assert.Contains(t, m, "sea_surface_temp")
	assert.Contains(t, m, "convective_activity")
}
