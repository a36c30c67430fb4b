package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycloneCategory(t *testing.T) {
	tests := []struct {
		speed float64
		want  int
	}{
		{30, 0},
		{61.9, 0},
		{62, 1},
		{87, 1},
		{88, 2},
		{117, 2},
		{118, 3},
		{165, 3},
		{166, 4},
		{220, 4},
		{221, 5},
		{300, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CycloneCategory(tt.speed), "speed %.1f", tt.speed)
	}
}

func TestSurgeCategory(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{1.0, "MINOR"},
		{2.5, "MODERATE"},
		{3.5, "MAJOR"},
		{4.5, "EXTREME"},
		{5.5, "CATASTROPHIC"},
		{10, "CATASTROPHIC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SurgeCategory(tt.level), "level %.1f", tt.level)
	}
}

func TestErosionSeverity(t *testing.T) {
	tests := []struct {
		intensity float64
		want      string
	}{
		{0.0, "STABLE"},
		{0.19, "STABLE"},
		{0.2, "SLIGHT_EROSION"},
		{0.4, "MODERATE_EROSION"},
		{0.6, "SEVERE_EROSION"},
		{0.8, "CATASTROPHIC_EROSION"},
		{0.99, "CATASTROPHIC_EROSION"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErosionSeverity(tt.intensity), "intensity %.2f", tt.intensity)
	}
}

func TestPollutionLevel(t *testing.T) {
	tests := []struct {
		intensity float64
		want      string
	}{
		{0.0, "CLEAN"},
		{0.2, "SLIGHTLY_POLLUTED"},
		{0.4, "MODERATELY_POLLUTED"},
		{0.6, "HEAVILY_POLLUTED"},
		{0.8, "CRITICALLY_POLLUTED"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PollutionLevel(tt.intensity), "intensity %.2f", tt.intensity)
	}
}
