package feed

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastalwatch/hazard-engine/internal/alerting"
	"github.com/coastalwatch/hazard-engine/internal/generator"
	"github.com/coastalwatch/hazard-engine/internal/models"
	"github.com/coastalwatch/hazard-engine/internal/observability"
	"github.com/coastalwatch/hazard-engine/internal/predcache"
	"github.com/coastalwatch/hazard-engine/internal/predictor"
	"github.com/coastalwatch/hazard-engine/internal/scoring"
)

// Orchestrator is one hazard's live-feed loop. Each iteration picks a random
// monitored region, generates a reading, scores it, emits it to subscribers
// and runs the alert check. Iterations within one loop never overlap; the
// next one starts only after the previous emit, predictor call and alert
// check have all completed.
//
// The loop has two states: active (looping) and stopped. Stop flips the
// active flag; the loop notices at its next wake and exits without emitting
// again.
type Orchestrator struct {
	hazard      models.HazardType
	interval    time.Duration
	gen         *generator.Generator
	monitor     *alerting.Monitor
	broadcaster *Broadcaster
	predict     *predictor.Client
	cache       *predcache.Cache
	metrics     *observability.Metrics
	clock       clockwork.Clock
	rng         *rand.Rand

	active atomic.Bool
	stop   chan struct{}
	done   chan struct{}
}

func NewOrchestrator(
	hazard models.HazardType,
	interval time.Duration,
	gen *generator.Generator,
	monitor *alerting.Monitor,
	broadcaster *Broadcaster,
	predict *predictor.Client,
	cache *predcache.Cache,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	rng *rand.Rand,
) *Orchestrator {
	return &Orchestrator{
		hazard:      hazard,
		interval:    interval,
		gen:         gen,
		monitor:     monitor,
		broadcaster: broadcaster,
		predict:     predict,
		cache:       cache,
		metrics:     metrics,
		clock:       clock,
		rng:         rng,
	}
}

// Start launches the loop. A no-op when already running.
func (o *Orchestrator) Start(ctx context.Context) {
	if !o.active.CompareAndSwap(false, true) {
		return
	}
	o.stop = make(chan struct{})
	o.done = make(chan struct{})
	slog.Info("feed loop starting", "hazard", o.hazard, "interval", o.interval)
	go o.run(ctx, o.stop, o.done)
}

// Stop clears the active flag and waits for the loop to exit. A no-op when
// not running.
func (o *Orchestrator) Stop() {
	if !o.active.CompareAndSwap(true, false) {
		return
	}
	close(o.stop)
	<-o.done
	slog.Info("feed loop stopped", "hazard", o.hazard)
}

func (o *Orchestrator) Running() bool {
	return o.active.Load()
}

func (o *Orchestrator) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	for o.active.Load() {
		o.iterate(ctx)

		select {
		case <-ctx.Done():
			o.active.Store(false)
			return
		case <-stop:
			return
		case <-o.clock.After(o.interval):
		}
	}
}

func (o *Orchestrator) iterate(ctx context.Context) {
	region := models.RandomRegion(o.rng)
	reading := o.gen.Generate(o.hazard, region)
	score := scoring.Score(reading)

	if o.metrics != nil {
		o.metrics.ReadingsGenerated.WithLabelValues(string(o.hazard)).Inc()
	}
	o.cache.Put(o.hazard, region.Region, score,
		scoring.RiskLevel(score), scoring.ShouldTrigger(o.hazard, score))

	event := &Event{
		Reading: reading,
		Loc:     region,
		Score:   score,
		Hazard:  o.hazard,
	}

	// External model consultation is a cyclone-only, best-effort step; any
	// failure leaves the prediction field nil and the loop moves on.
	if o.predict != nil {
		if cyclone, ok := reading.(models.CycloneReading); ok {
			if p, err := o.externalPredict(ctx, cyclone); err != nil {
				slog.Warn("cyclone predictor unavailable", "error", err)
			} else {
				event.ExternalPrediction = &p
			}
		}
	}

	o.broadcaster.Broadcast(event)

	// Alert-check failures must never take the loop down; live emission has
	// priority over alert-creation correctness.
	if _, err := o.monitor.Check(ctx, reading, score, region); err != nil {
		if o.metrics != nil {
			o.metrics.AlertCheckErrors.WithLabelValues(string(o.hazard)).Inc()
		}
		slog.Error("alert check failed", "hazard", o.hazard, "region", region.Region, "error", err)
	}
}

func (o *Orchestrator) externalPredict(ctx context.Context, r models.CycloneReading) (float64, error) {
	start := o.clock.Now()
	p, err := o.predict.Predict(ctx, predictor.Input{
		CentralPressure:    r.CentralPressure,
		WindSpeed:          r.Speed,
		WindShear:          r.VerticalShear,
		SeaSurfaceTemp:     r.SeaSurfaceTemp,
		CloudTopTemp:       r.CloudTopTemp,
		Vorticity:          r.Vorticity,
		ConvectiveActivity: r.ConvectiveActivity,
		Humidity:           r.Humidity,
		Precipitation:      r.Precipitation,
	})
	if o.metrics != nil {
		o.metrics.PredictorDuration.Observe(o.clock.Since(start).Seconds())
		if err != nil {
			o.metrics.PredictorRequests.WithLabelValues("error").Inc()
		} else {
			o.metrics.PredictorRequests.WithLabelValues("success").Inc()
		}
	}
	return p, err
}
