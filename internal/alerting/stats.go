package alerting

import (
	"context"
	"time"

	"github.com/coastalwatch/hazard-engine/internal/models"
	"github.com/coastalwatch/hazard-engine/internal/repository"
)

type Stats struct {
	TotalGenerated  int                          `json:"totalGenerated"`
	PendingApproval int                          `json:"pendingApproval"`
	TotalApproved   int                          `json:"totalApproved"`
	TotalSent       int                          `json:"totalSent"`
	Last24Hours     int                          `json:"last24Hours"`
	ByType          map[models.HazardType]int    `json:"byType"`
	BySeverity      map[models.AlertSeverity]int `json:"bySeverity"`
}

// Stats aggregates counts over the auto-generated alerts for the review
// dashboard.
func (m *Monitor) Stats(ctx context.Context) (*Stats, error) {
	auto := true
	generated := models.StatusGenerated
	approved := models.StatusApproved
	sent := models.StatusSent
	dayAgo := m.clock.Now().Add(-24 * time.Hour)

	totalGenerated, err := m.repo.Count(ctx, repository.Filter{AutoGenerated: &auto})
	if err != nil {
		return nil, err
	}
	pending, err := m.repo.Count(ctx, repository.Filter{Status: &generated})
	if err != nil {
		return nil, err
	}
	totalApproved, err := m.repo.Count(ctx, repository.Filter{Status: &approved})
	if err != nil {
		return nil, err
	}
	totalSent, err := m.repo.Count(ctx, repository.Filter{Status: &sent})
	if err != nil {
		return nil, err
	}
	last24, err := m.repo.Count(ctx, repository.Filter{AutoGenerated: &auto, Since: &dayAgo})
	if err != nil {
		return nil, err
	}
	byType, err := m.repo.CountByType(ctx, repository.Filter{AutoGenerated: &auto})
	if err != nil {
		return nil, err
	}
	bySeverity, err := m.repo.CountBySeverity(ctx, repository.Filter{AutoGenerated: &auto})
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalGenerated:  totalGenerated,
		PendingApproval: pending,
		TotalApproved:   totalApproved,
		TotalSent:       totalSent,
		Last24Hours:     last24,
		ByType:          byType,
		BySeverity:      bySeverity,
	}, nil
}
