package repository

import (
	"context"
	"time"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

type Filter struct {
	Limit         int
	Offset        int
	Since         *time.Time
	Type          *models.HazardType
	Severity      *models.AlertSeverity
	MinSeverity   *models.AlertSeverity // >= this severity (e.g. HIGH includes HIGH and EXTREME)
	Status        *models.AlertStatus
	Region        *string
	AutoGenerated *bool
}

// ReviewUpdate carries a status transition made by a human reviewer.
type ReviewUpdate struct {
	Status      models.AlertStatus
	ReviewedBy  *string
	ReviewNotes *string
}

type AlertRepository interface {
	Add(ctx context.Context, a *models.Alert) error
	GetByID(ctx context.Context, id string) (*models.Alert, error)
	// FindRecent returns the newest alert matching (type, region, state)
	// created at or after since, or nil when none exists. This is the dedup
	// gate's lookup; it is a plain read with no locking against a concurrent
	// insert.
	FindRecent(ctx context.Context, t models.HazardType, region, state string, since time.Time) (*models.Alert, error)
	List(ctx context.Context, opts Filter) ([]models.Alert, error)
	Count(ctx context.Context, opts Filter) (int, error)
	CountByType(ctx context.Context, opts Filter) (map[models.HazardType]int, error)
	CountBySeverity(ctx context.Context, opts Filter) (map[models.AlertSeverity]int, error)
	UpdateReview(ctx context.Context, id string, upd ReviewUpdate) (*models.Alert, error)
}
