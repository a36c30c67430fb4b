// Package predcache keeps the latest risk prediction per hazard and region
// for the predictions API. Entries are overwritten on write and never
// expire; the cache is empty again after a process restart.
package predcache

import (
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

// Entry is one cached prediction, keyed by "hazard:region".
type Entry struct {
	Key         string               `json:"key"`
	Hazard      models.HazardType    `json:"threatType"`
	Region      string               `json:"region"`
	Score       float64              `json:"prediction"`
	RiskLevel   models.AlertSeverity `json:"riskLevel"`
	ShouldAlert bool                 `json:"shouldTriggerAlert"`
	Timestamp   time.Time            `json:"timestamp"`
}

type Cache struct {
	clock clockwork.Clock

	mu      sync.RWMutex
	entries map[string]Entry
}

func New(clock clockwork.Clock) *Cache {
	return &Cache{
		clock:   clock,
		entries: make(map[string]Entry),
	}
}

// Put stores the latest prediction for (hazard, region), replacing any
// previous entry.
func (c *Cache) Put(hazard models.HazardType, region string, score float64, riskLevel models.AlertSeverity, shouldAlert bool) {
	key := string(hazard) + ":" + region
	c.mu.Lock()
	c.entries[key] = Entry{
		Key:         key,
		Hazard:      hazard,
		Region:      region,
		Score:       score,
		RiskLevel:   riskLevel,
		ShouldAlert: shouldAlert,
		Timestamp:   c.clock.Now(),
	}
	c.mu.Unlock()
}

// Get returns the entry for (hazard, region) if present.
func (c *Cache) Get(hazard models.HazardType, region string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[string(hazard)+":"+region]
	return e, ok
}

// List returns entries filtered by hazard and/or region; empty filters match
// everything. Results are ordered by key for stable output.
func (c *Cache) List(hazard models.HazardType, region string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if hazard != "" && e.Hazard != hazard {
			continue
		}
		if region != "" && e.Region != region {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
