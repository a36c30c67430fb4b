package models

import (
	"encoding/json"
	"time"
)

type HazardType string

const (
	HazardCyclone        HazardType = "CYCLONE"
	HazardStormSurge     HazardType = "STORM_SURGE"
	HazardCoastalErosion HazardType = "COASTAL_EROSION"
	HazardWaterPollution HazardType = "WATER_POLLUTION"
)

// HazardTypes lists every supported hazard. The set is fixed; there is no
// extension point.
var HazardTypes = []HazardType{
	HazardCyclone,
	HazardStormSurge,
	HazardCoastalErosion,
	HazardWaterPollution,
}

func ParseHazardType(s string) (HazardType, bool) {
	switch HazardType(s) {
	case HazardCyclone, HazardStormSurge, HazardCoastalErosion, HazardWaterPollution:
		return HazardType(s), true
	}
	return "", false
}

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityModerate AlertSeverity = "MODERATE"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityExtreme  AlertSeverity = "EXTREME"
)

// Rank gives the total order LOW < MODERATE < HIGH < EXTREME.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityModerate:
		return 1
	case SeverityHigh:
		return 2
	case SeverityExtreme:
		return 3
	}
	return 0
}

type AlertStatus string

const (
	StatusGenerated       AlertStatus = "GENERATED"
	StatusPendingApproval AlertStatus = "PENDING_APPROVAL"
	StatusApproved        AlertStatus = "APPROVED"
	StatusRejected        AlertStatus = "REJECTED"
	StatusSent            AlertStatus = "SENT"
)

func ParseAlertStatus(s string) (AlertStatus, bool) {
	switch AlertStatus(s) {
	case StatusGenerated, StatusPendingApproval, StatusApproved, StatusRejected, StatusSent:
		return AlertStatus(s), true
	}
	return "", false
}

// Alert is one persisted hazard alert row. Severity, content and
// PredictionData are immutable after creation; only Status and the reviewer
// fields change later, through the human review workflow.
type Alert struct {
	ID             string          `json:"id"`
	Type           HazardType      `json:"type"`
	Severity       AlertSeverity   `json:"severity"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Region         string          `json:"region"`
	State          string          `json:"state"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	PredictionData json.RawMessage `json:"predictionData"`
	MLPrediction   float64         `json:"mlPrediction"`
	ThresholdMet   bool            `json:"thresholdMet"`
	AutoGenerated  bool            `json:"autoGenerated"`
	Status         AlertStatus     `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`

	ReviewedBy  *string    `json:"reviewedBy,omitempty"`
	ReviewNotes *string    `json:"reviewNotes,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
}
