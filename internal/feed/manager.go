// Package feed runs the per-hazard live-feed loops and fans their emissions
// out to attached subscribers. A hazard's loop runs only while it has at
// least one subscriber: the first attach starts it, the last detach stops it.
package feed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastalwatch/hazard-engine/internal/alerting"
	"github.com/coastalwatch/hazard-engine/internal/generator"
	"github.com/coastalwatch/hazard-engine/internal/models"
	"github.com/coastalwatch/hazard-engine/internal/observability"
	"github.com/coastalwatch/hazard-engine/internal/predcache"
	"github.com/coastalwatch/hazard-engine/internal/predictor"
)

// Intervals holds the emission interval per hazard feed.
type Intervals struct {
	Cyclone        time.Duration
	StormSurge     time.Duration
	CoastalErosion time.Duration
	WaterPollution time.Duration
}

func (iv Intervals) forHazard(h models.HazardType) time.Duration {
	switch h {
	case models.HazardStormSurge:
		return iv.StormSurge
	case models.HazardCoastalErosion:
		return iv.CoastalErosion
	case models.HazardWaterPollution:
		return iv.WaterPollution
	default:
		return iv.Cyclone
	}
}

// Manager owns the four hazard feeds. The hazard loops share no mutable
// state with each other; the alert store behind the monitor is the only
// shared resource.
type Manager struct {
	ctx     context.Context
	metrics *observability.Metrics

	mu            sync.Mutex
	broadcasters  map[models.HazardType]*Broadcaster
	orchestrators map[models.HazardType]*Orchestrator
}

func NewManager(
	intervals Intervals,
	monitor *alerting.Monitor,
	predict *predictor.Client,
	cache *predcache.Cache,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	seed int64,
) *Manager {
	m := &Manager{
		metrics:       metrics,
		broadcasters:  make(map[models.HazardType]*Broadcaster),
		orchestrators: make(map[models.HazardType]*Orchestrator),
	}

	for i, hazard := range models.HazardTypes {
		// Each loop owns an independent random source; rand.Rand is not
		// safe for concurrent use.
		rng := rand.New(rand.NewSource(seed + int64(i)))
		gen := generator.New(rand.New(rand.NewSource(seed+int64(i)+100)), clock)
		b := NewBroadcaster()

		var p *predictor.Client
		if hazard == models.HazardCyclone {
			p = predict
		}

		m.broadcasters[hazard] = b
		m.orchestrators[hazard] = NewOrchestrator(
			hazard, intervals.forHazard(hazard), gen, monitor, b, p, cache, metrics, clock, rng)
	}
	return m
}

// Start records the base context under which loops run. Loops themselves
// start lazily on the first subscription.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()
}

// Subscribe attaches a consumer to a hazard feed, starting the loop if this
// is its first subscriber.
func (m *Manager) Subscribe(hazard models.HazardType) (uint64, <-chan *Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.broadcasters[hazard]
	if !ok {
		return 0, nil, fmt.Errorf("unknown hazard feed: %s", hazard)
	}
	if m.ctx == nil {
		return 0, nil, fmt.Errorf("feed manager not started")
	}

	id, ch := b.Subscribe()
	if m.metrics != nil {
		m.metrics.FeedSubscribers.WithLabelValues(string(hazard)).Set(float64(b.SubscriberCount()))
	}
	m.orchestrators[hazard].Start(m.ctx)
	return id, ch, nil
}

// Unsubscribe detaches a consumer; the loop is torn down when its last
// subscriber leaves. Stop waits out the loop's in-flight iteration, which
// can take as long as a predictor call, so it runs outside the manager
// lock to keep other hazards' subscriptions responsive.
func (m *Manager) Unsubscribe(hazard models.HazardType, id uint64) {
	m.mu.Lock()
	b, ok := m.broadcasters[hazard]
	if !ok {
		m.mu.Unlock()
		return
	}
	b.Unsubscribe(id)
	if m.metrics != nil {
		m.metrics.FeedSubscribers.WithLabelValues(string(hazard)).Set(float64(b.SubscriberCount()))
	}
	var o *Orchestrator
	if b.SubscriberCount() == 0 {
		o = m.orchestrators[hazard]
	}
	m.mu.Unlock()

	if o == nil {
		return
	}
	o.Stop()

	// A subscriber that attached while the loop was winding down found the
	// active flag still set and did not start it; recheck and restart.
	m.mu.Lock()
	if b.SubscriberCount() > 0 && m.ctx != nil {
		o.Start(m.ctx)
	}
	m.mu.Unlock()
}

// SubscriberCount reports the consumers attached to one hazard feed.
func (m *Manager) SubscriberCount(hazard models.HazardType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.broadcasters[hazard]; ok {
		return b.SubscriberCount()
	}
	return 0
}

// Stop tears down every loop and closes all subscriber channels.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orchestrators {
		o.Stop()
	}
	for _, b := range m.broadcasters {
		b.Close()
	}
}
