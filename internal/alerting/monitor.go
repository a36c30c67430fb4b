// Package alerting turns classified hazard readings into persisted alerts:
// severity ladder, content composition, and the deduplication gate in front
// of the alert store.
package alerting

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/coastalwatch/hazard-engine/internal/models"
	"github.com/coastalwatch/hazard-engine/internal/observability"
	"github.com/coastalwatch/hazard-engine/internal/repository"
	"github.com/coastalwatch/hazard-engine/internal/scoring"
)

// DedupWindow is the rolling window inside which a second alert for the same
// (type, region, state) is suppressed.
const DedupWindow = time.Hour

// PredictionRecord is the opaque blob stored on each alert: the reading that
// triggered it plus the computed risk factors. The engine never validates it
// further after creation.
type PredictionRecord struct {
	Reading      models.Reading       `json:"reading"`
	MLPrediction float64              `json:"mlPrediction"`
	Severity     models.AlertSeverity `json:"severity"`
}

// Monitor evaluates readings against the severity ladder and creates alerts
// through the dedup gate. Safe for concurrent use by all hazard loops.
type Monitor struct {
	repo    repository.AlertRepository
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMonitor(repo repository.AlertRepository, clock clockwork.Clock, rng *rand.Rand, metrics *observability.Metrics) *Monitor {
	return &Monitor{
		repo:    repo,
		clock:   clock,
		rng:     rng,
		metrics: metrics,
	}
}

// Check classifies the reading and, when severity is above LOW, runs the
// dedup gate and inserts a GENERATED alert. It returns (nil, nil) when no
// alert is warranted or a recent duplicate suppressed it, and (nil, err) on
// store failure. Callers log and carry on; a failed check never produces
// an alert.
func (m *Monitor) Check(ctx context.Context, reading models.Reading, score float64, region models.Region) (*models.Alert, error) {
	severity := scoring.Classify(reading, score)
	if severity == models.SeverityLow {
		return nil, nil
	}

	hazard := reading.Hazard()
	since := m.clock.Now().Add(-DedupWindow)
	recent, err := m.repo.FindRecent(ctx, hazard, region.Region, region.State, since)
	if err != nil {
		return nil, fmt.Errorf("dedup lookup for %s/%s: %w", hazard, region.Region, err)
	}
	if recent != nil {
		if m.metrics != nil {
			m.metrics.AlertsSuppressed.WithLabelValues(string(hazard)).Inc()
		}
		slog.Debug("alert suppressed by dedup window",
			"type", hazard, "region", region.Region, "existing", recent.ID)
		return nil, nil
	}

	ml := score
	if ml == 0 {
		// Observed upstream behavior: a missing prediction is replaced by a
		// uniform draw in [0.6, 1.0), which floors the stored confidence of
		// threshold-breach alerts at 0.6.
		ml = m.fallbackPrediction()
	}

	title, description := Compose(reading, severity, ml, region)

	data, err := json.Marshal(PredictionRecord{
		Reading:      reading,
		MLPrediction: ml,
		Severity:     severity,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling prediction record: %w", err)
	}

	alert := &models.Alert{
		ID:             uuid.NewString(),
		Type:           hazard,
		Severity:       severity,
		Title:          title,
		Description:    description,
		Region:         region.Region,
		State:          region.State,
		Latitude:       region.Lat,
		Longitude:      region.Long,
		PredictionData: data,
		MLPrediction:   ml,
		ThresholdMet:   true,
		AutoGenerated:  true,
		Status:         models.StatusGenerated,
		CreatedAt:      m.clock.Now().UTC(),
	}

	if err := m.repo.Add(ctx, alert); err != nil {
		return nil, fmt.Errorf("inserting %s alert: %w", hazard, err)
	}

	if m.metrics != nil {
		m.metrics.AlertsCreated.WithLabelValues(string(hazard), string(severity)).Inc()
	}
	slog.Info("alert generated",
		"id", alert.ID, "type", hazard, "severity", severity,
		"region", region.Region, "ml_prediction", ml)
	return alert, nil
}

func (m *Monitor) fallbackPrediction() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64()*0.4 + 0.6
}
