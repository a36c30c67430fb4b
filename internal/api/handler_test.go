package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/coastalwatch/hazard-engine/internal/alerting"
	"github.com/coastalwatch/hazard-engine/internal/feed"
	"github.com/coastalwatch/hazard-engine/internal/models"
	"github.com/coastalwatch/hazard-engine/internal/observability"
	"github.com/coastalwatch/hazard-engine/internal/predcache"
	"github.com/coastalwatch/hazard-engine/internal/repository"
)

// mockRepo implements repository.AlertRepository for handler tests.
type mockRepo struct {
	alerts []models.Alert
}

func (m *mockRepo) Add(ctx context.Context, a *models.Alert) error {
	m.alerts = append(m.alerts, *a)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	for i := range m.alerts {
		if m.alerts[i].ID == id {
			return &m.alerts[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) FindRecent(ctx context.Context, t models.HazardType, region, state string, since time.Time) (*models.Alert, error) {
	return nil, nil
}

func (m *mockRepo) List(ctx context.Context, opts repository.Filter) ([]models.Alert, error) {
	results := m.alerts

	if opts.Type != nil {
		var filtered []models.Alert
		for _, a := range results {
			if a.Type == *opts.Type {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}
	if opts.Status != nil {
		var filtered []models.Alert
		for _, a := range results {
			if a.Status == *opts.Status {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}
	if opts.MinSeverity != nil {
		var filtered []models.Alert
		for _, a := range results {
			if a.Severity.Rank() >= opts.MinSeverity.Rank() {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

func (m *mockRepo) Count(ctx context.Context, opts repository.Filter) (int, error) {
	list, _ := m.List(ctx, opts)
	return len(list), nil
}

func (m *mockRepo) CountByType(ctx context.Context, opts repository.Filter) (map[models.HazardType]int, error) {
	out := make(map[models.HazardType]int)
	for _, a := range m.alerts {
		out[a.Type]++
	}
	return out, nil
}

func (m *mockRepo) CountBySeverity(ctx context.Context, opts repository.Filter) (map[models.AlertSeverity]int, error) {
	out := make(map[models.AlertSeverity]int)
	for _, a := range m.alerts {
		out[a.Severity]++
	}
	return out, nil
}

func (m *mockRepo) UpdateReview(ctx context.Context, id string, upd repository.ReviewUpdate) (*models.Alert, error) {
	for i := range m.alerts {
		if m.alerts[i].ID == id {
			m.alerts[i].Status = upd.Status
			if upd.ReviewedBy != nil {
				m.alerts[i].ReviewedBy = upd.ReviewedBy
			}
			if upd.ReviewNotes != nil {
				m.alerts[i].ReviewNotes = upd.ReviewNotes
			}
			return &m.alerts[i], nil
		}
	}
	return nil, nil
}

func setupRouter(repo *mockRepo) (*gin.Engine, *predcache.Cache, *feed.Manager) {
	gin.SetMode(gin.TestMode)

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetricsForTesting()
	monitor := alerting.NewMonitor(repo, clock, rand.New(rand.NewSource(1)), metrics)
	cache := predcache.New(clock)

	intervals := feed.Intervals{
		Cyclone:        time.Second,
		StormSurge:     time.Second,
		CoastalErosion: time.Second,
		WaterPollution: time.Second,
	}
	feeds := feed.NewManager(intervals, monitor, nil, cache, metrics, clock, 1)

	router := gin.New()
	handler := NewHandler(repo, monitor, cache, feeds, 1)
	handler.RegisterRoutes(router)
	return router, cache, feeds
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedAlert(id string, typ models.HazardType, sev models.AlertSeverity) models.Alert {
	return models.Alert{
		ID:            id,
		Type:          typ,
		Severity:      sev,
		Title:         "Test Alert",
		Region:        "chennai",
		State:         "tamil_nadu",
		Status:        models.StatusGenerated,
		AutoGenerated: true,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestHealth(t *testing.T) {
	router, _, _ := setupRouter(&mockRepo{})

	w := doRequest(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestListAlerts(t *testing.T) {
	repo := &mockRepo{alerts: []models.Alert{
		seedAlert("a1", models.HazardCyclone, models.SeverityExtreme),
		seedAlert("a2", models.HazardStormSurge, models.SeverityModerate),
	}}
	router, _, _ := setupRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/alerts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Alerts []models.Alert `json:"alerts"`
		Count  int            `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}

	// Type filter narrows results.
	w = doRequest(router, http.MethodGet, "/api/alerts?type=CYCLONE", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Alerts[0].ID != "a1" {
		t.Errorf("type filter: expected [a1], got %+v", resp.Alerts)
	}

	// Min severity filter.
	w = doRequest(router, http.MethodGet, "/api/alerts?min_severity=HIGH", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("min_severity filter: expected 1, got %d", resp.Count)
	}
}

func TestListAlerts_BadFilters(t *testing.T) {
	router, _, _ := setupRouter(&mockRepo{})

	for _, path := range []string{
		"/api/alerts?type=TSUNAMI",
		"/api/alerts?severity=BANANAS",
		"/api/alerts?status=UNKNOWN",
	} {
		w := doRequest(router, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestGetAlert(t *testing.T) {
	repo := &mockRepo{alerts: []models.Alert{
		seedAlert("a1", models.HazardCyclone, models.SeverityHigh),
	}}
	router, _, _ := setupRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/alerts/a1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var alert models.Alert
	if err := json.Unmarshal(w.Body.Bytes(), &alert); err != nil {
		t.Fatalf("failed to decode alert: %v", err)
	}
	if alert.ID != "a1" {
		t.Errorf("expected ID a1, got %s", alert.ID)
	}

	w = doRequest(router, http.MethodGet, "/api/alerts/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestReviewAlert(t *testing.T) {
	repo := &mockRepo{alerts: []models.Alert{
		seedAlert("a1", models.HazardCyclone, models.SeverityHigh),
	}}
	router, _, _ := setupRouter(repo)

	body := `{"status":"APPROVED","reviewedBy":"duty-officer","reviewNotes":"confirmed"}`
	w := doRequest(router, http.MethodPatch, "/api/alerts/a1/status", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var alert models.Alert
	if err := json.Unmarshal(w.Body.Bytes(), &alert); err != nil {
		t.Fatalf("failed to decode alert: %v", err)
	}
	if alert.Status != models.StatusApproved {
		t.Errorf("expected APPROVED, got %s", alert.Status)
	}
	if alert.ReviewedBy == nil || *alert.ReviewedBy != "duty-officer" {
		t.Errorf("expected reviewer, got %v", alert.ReviewedBy)
	}

	// GENERATED is the creation state, not a reviewer transition.
	w = doRequest(router, http.MethodPatch, "/api/alerts/a1/status", `{"status":"GENERATED"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for GENERATED, got %d", w.Code)
	}

	w = doRequest(router, http.MethodPatch, "/api/alerts/a1/status", `{"notstatus":1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing status, got %d", w.Code)
	}

	w = doRequest(router, http.MethodPatch, "/api/alerts/missing/status", `{"status":"REJECTED"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAlertStats(t *testing.T) {
	repo := &mockRepo{alerts: []models.Alert{
		seedAlert("a1", models.HazardCyclone, models.SeverityHigh),
		seedAlert("a2", models.HazardCyclone, models.SeverityExtreme),
	}}
	router, _, _ := setupRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/alerts/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var stats alerting.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.ByType[models.HazardCyclone] != 2 {
		t.Errorf("expected 2 cyclone alerts, got %d", stats.ByType[models.HazardCyclone])
	}
}

func TestListPredictions(t *testing.T) {
	router, cache, _ := setupRouter(&mockRepo{})

	w := doRequest(router, http.MethodGet, "/api/predictions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on empty cache, got %d", w.Code)
	}

	cache.Put(models.HazardCyclone, "chennai", 0.82, models.SeverityExtreme, true)

	w = doRequest(router, http.MethodGet, "/api/predictions?threatType=CYCLONE&region=chennai", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Predictions []predcache.Entry `json:"predictions"`
		Count       int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode predictions: %v", err)
	}
	if resp.Count != 1 || resp.Predictions[0].Score != 0.82 {
		t.Errorf("unexpected predictions: %+v", resp)
	}

	// Fully-qualified lookup with no entry is a 404.
	w = doRequest(router, http.MethodGet, "/api/predictions?threatType=CYCLONE&region=goa", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/api/predictions?threatType=TSUNAMI", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestListRegions(t *testing.T) {
	router, _, _ := setupRouter(&mockRepo{})

	w := doRequest(router, http.MethodGet, "/api/regions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Regions []models.Region `json:"regions"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode regions: %v", err)
	}
	if resp.Count != len(models.Regions) {
		t.Errorf("expected %d regions, got %d", len(models.Regions), resp.Count)
	}
}

func TestReadingHistory(t *testing.T) {
	router, _, _ := setupRouter(&mockRepo{})

	w := doRequest(router, http.MethodGet, "/api/readings/CYCLONE/history?points=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Hazard   models.HazardType `json:"hazard"`
		Region   string            `json:"region"`
		Count    int               `json:"count"`
		Readings []json.RawMessage `json:"readings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if resp.Count != 10 || len(resp.Readings) != 10 {
		t.Errorf("expected 10 readings, got %d", resp.Count)
	}
	if resp.Hazard != models.HazardCyclone {
		t.Errorf("expected CYCLONE, got %s", resp.Hazard)
	}

	w = doRequest(router, http.MethodGet, "/api/readings/EARTHQUAKE/history", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown hazard, got %d", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/api/readings/CYCLONE/history?region=atlantis", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown region, got %d", w.Code)
	}
}

func TestReadingHistory_ConcurrentRequests(t *testing.T) {
	router, _, _ := setupRouter(&mockRepo{})

	// Parallel history requests must not share random state.
	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			w := doRequest(router, http.MethodGet, "/api/readings/CYCLONE/history?points=200", "")
			codes[n] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i, code)
		}
	}
}

func TestStreamFeed_Errors(t *testing.T) {
	router, _, _ := setupRouter(&mockRepo{})

	w := doRequest(router, http.MethodGet, "/api/stream/EARTHQUAKE", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown hazard, got %d", w.Code)
	}

	// The feed manager was never started, so subscriptions are refused.
	w = doRequest(router, http.MethodGet, "/api/stream/CYCLONE", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before feeds start, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	var limited bool
	for i := 0; i < 10; i++ {
		w := doRequest(router, http.MethodGet, "/ping", "")
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected rate limiting to reject a burst of requests")
	}
}
