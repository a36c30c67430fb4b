package alerting

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastalwatch/hazard-engine/internal/models"
	"github.com/coastalwatch/hazard-engine/internal/observability"
	"github.com/coastalwatch/hazard-engine/internal/repository"
)

func newTestMonitor(t *testing.T) (*Monitor, *repository.SQLiteDB, *clockwork.FakeClock) {
	t.Helper()
	db, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	m := NewMonitor(db, clock, rand.New(rand.NewSource(1)), observability.NewMetricsForTesting())
	return m, db, clock
}

func extremeCyclone() models.CycloneReading {
	return models.CycloneReading{
		Speed:           185,
		CentralPressure: 915,
		SeaSurfaceTemp:  31,
		Humidity:        92,
	}
}

func cleanWater() models.PollutionReading {
	return models.PollutionReading{
		WaterQuality: models.WaterQuality{Turbidity: 10, DissolvedOxygen: 6},
	}
}

func TestMonitor_CreatesAlert(t *testing.T) {
	m, db, _ := newTestMonitor(t)
	ctx := context.Background()

	alert, err := m.Check(ctx, extremeCyclone(), 0.9, chennai)
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.Equal(t, models.HazardCyclone, alert.Type)
	assert.Equal(t, models.SeverityExtreme, alert.Severity)
	assert.Equal(t, models.StatusGenerated, alert.Status)
	assert.Equal(t, "chennai", alert.Region)
	assert.Equal(t, "tamil_nadu", alert.State)
	assert.Equal(t, chennai.Lat, alert.Latitude)
	assert.Equal(t, 0.9, alert.MLPrediction)
	assert.True(t, alert.ThresholdMet)
	assert.True(t, alert.AutoGenerated)
	assert.NotEmpty(t, alert.ID)

	// The alert is persisted, not just returned.
	stored, err := db.GetByID(ctx, alert.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, alert.Title, stored.Title)
}

func TestMonitor_LowSeverityProducesNothing(t *testing.T) {
	m, db, _ := newTestMonitor(t)
	ctx := context.Background()

	alert, err := m.Check(ctx, cleanWater(), 0.3, chennai)
	require.NoError(t, err)
	assert.Nil(t, alert)

	n, err := db.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n, "no row should be written for a LOW reading")
}

func TestMonitor_DedupWindow(t *testing.T) {
	m, db, clock := newTestMonitor(t)
	ctx := context.Background()

	first, err := m.Check(ctx, extremeCyclone(), 0.9, chennai)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Ten minutes later the same signature is suppressed.
	clock.Advance(10 * time.Minute)
	second, err := m.Check(ctx, extremeCyclone(), 0.9, chennai)
	require.NoError(t, err)
	assert.Nil(t, second)

	n, err := db.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Past the window a fresh alert goes through.
	clock.Advance(81 * time.Minute)
	third, err := m.Check(ctx, extremeCyclone(), 0.9, chennai)
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestMonitor_DedupIsPerRegionAndHazard(t *testing.T) {
	m, _, _ := newTestMonitor(t)
	ctx := context.Background()

	mumbai := models.Region{Region: "mumbai", State: "maharashtra", Lat: 19.076, Long: 72.8777}

	first, err := m.Check(ctx, extremeCyclone(), 0.9, chennai)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Same hazard, different region: not a duplicate.
	other, err := m.Check(ctx, extremeCyclone(), 0.9, mumbai)
	require.NoError(t, err)
	assert.NotNil(t, other)

	// Different hazard, same region: not a duplicate either.
	surge := models.StormSurgeReading{
		WaterLevel:  models.WaterLevel{CurrentLevel: 6.5},
		Waves:       models.WaveConditions{SignificantHeight: 6.2},
		Meteorology: models.Meteorology{WindSpeed: 110},
	}
	surgeAlert, err := m.Check(ctx, surge, 0.9, chennai)
	require.NoError(t, err)
	assert.NotNil(t, surgeAlert)
}

func TestMonitor_FallbackPrediction(t *testing.T) {
	m, _, _ := newTestMonitor(t)
	ctx := context.Background()

	// Turbidity alone breaches the extreme tier while the score stays zero,
	// so the stored prediction falls back to the synthetic draw.
	dirty := models.PollutionReading{
		WaterQuality: models.WaterQuality{Turbidity: 45, DissolvedOxygen: 8},
		Chemicals:    models.ChemicalPollutants{},
		Biological:   models.BiologicalIndicators{BiodiversityIndex: 1},
	}

	alert, err := m.Check(ctx, dirty, 0, chennai)
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.GreaterOrEqual(t, alert.MLPrediction, 0.6)
	assert.Less(t, alert.MLPrediction, 1.0)
}

func TestMonitor_PredictionRecordRoundTrip(t *testing.T) {
	m, _, _ := newTestMonitor(t)
	ctx := context.Background()

	reading := extremeCyclone()
	alert, err := m.Check(ctx, reading, 0.9, chennai)
	require.NoError(t, err)
	require.NotNil(t, alert)

	var record struct {
		Reading      models.CycloneReading `json:"reading"`
		MLPrediction float64               `json:"mlPrediction"`
		Severity     models.AlertSeverity  `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(alert.PredictionData, &record))

	assert.Equal(t, reading.Speed, record.Reading.Speed)
	assert.Equal(t, reading.CentralPressure, record.Reading.CentralPressure)
	assert.Equal(t, 0.9, record.MLPrediction)
	assert.Equal(t, models.SeverityExtreme, record.Severity)
}

func TestMonitor_Stats(t *testing.T) {
	m, db, clock := newTestMonitor(t)
	ctx := context.Background()

	_, err := m.Check(ctx, extremeCyclone(), 0.9, chennai)
	require.NoError(t, err)

	surge := models.StormSurgeReading{
		WaterLevel: models.WaterLevel{CurrentLevel: 6.5},
	}
	surgeAlert, err := m.Check(ctx, surge, 0.9, chennai)
	require.NoError(t, err)
	require.NotNil(t, surgeAlert)

	_, err = db.UpdateReview(ctx, surgeAlert.ID, repository.ReviewUpdate{
		Status: models.StatusApproved,
	})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	stats, err := m.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalGenerated)
	assert.Equal(t, 1, stats.PendingApproval)
	assert.Equal(t, 1, stats.TotalApproved)
	assert.Equal(t, 0, stats.TotalSent)
	assert.Equal(t, 2, stats.Last24Hours)
	assert.Equal(t, 1, stats.ByType[models.HazardCyclone])
	assert.Equal(t, 1, stats.ByType[models.HazardStormSurge])
	assert.Equal(t, 2, stats.BySeverity[models.SeverityExtreme])
}
