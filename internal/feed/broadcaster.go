package feed

import (
	"sync"
	"sync/atomic"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

// Event is one live-feed emission: the generated reading, the monitored
// region it was anchored to, the engine's own risk score, and the external
// model's prediction when one was obtained (cyclone feed only).
type Event struct {
	Reading            models.Reading    `json:"data"`
	Loc                models.Region     `json:"loc"`
	Score              float64           `json:"mlPrediction"`
	ExternalPrediction *float64          `json:"ml_pred"`
	Hazard             models.HazardType `json:"hazard"`
}

// Broadcaster fans events out to the subscribers of one hazard feed.
type Broadcaster struct {
	subscribers map[uint64]chan *Event
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *Event),
	}
}

func (b *Broadcaster) Subscribe() (uint64, chan *Event) {
	id := b.nextID.Add(1)
	ch := make(chan *Event, 16)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(e *Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, letting attached streams exit
// gracefully.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
