// Package scoring holds the two alert-worthiness policies applied to hazard
// readings. They are deliberately separate and not reconciled:
//
//   - Score + LiveThreshold: a single weighted risk score in [0,1] with a
//     per-hazard trigger threshold, used by the live prediction surface.
//   - SeverityLadder (classify.go): per-field OR threshold tiers, used by the
//     alert monitor to decide whether a persisted alert is warranted.
//
// Callers pick the gate that applies to their code path.
package scoring

import (
	"math"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

// Score computes the heuristic risk score for any reading. Pure and
// deterministic: the same reading always yields the same score.
func Score(r models.Reading) float64 {
	switch v := r.(type) {
	case models.CycloneReading:
		return CycloneScore(v)
	case models.StormSurgeReading:
		return StormSurgeScore(v)
	case models.CoastalErosionReading:
		return ErosionScore(v)
	case models.PollutionReading:
		return PollutionScore(v)
	default:
		return 0
	}
}

// CycloneScore weighs wind speed, pressure deficit, sea surface temperature,
// humidity, convective activity and vorticity. Weights sum to 1.
func CycloneScore(r models.CycloneReading) float64 {
	score := math.Min(1, r.Speed/200) * 0.25
	score += math.Max(0, (1013-r.CentralPressure)/50) * 0.20
	score += math.Max(0, (r.SeaSurfaceTemp-26)/6) * 0.15
	score += math.Min(1, r.Humidity/100) * 0.15
	score += r.ConvectiveActivity * 0.15
	score += math.Min(1, r.Vorticity/0.002) * 0.10
	return clamp01(score)
}

// StormSurgeScore weighs water-level anomaly, wave height, wind speed and
// rate of rise.
func StormSurgeScore(r models.StormSurgeReading) float64 {
	score := math.Min(1, r.WaterLevel.Anomaly/3) * 0.3
	score += math.Min(1, r.Waves.SignificantHeight/8) * 0.25
	score += math.Min(1, r.Meteorology.WindSpeed/120) * 0.25
	score += math.Min(1, r.WaterLevel.RateOfRise/1) * 0.2
	return clamp01(score)
}

// ErosionScore weighs erosion rate, wave energy, remaining beach width and
// the inverse of the protection factors.
func ErosionScore(r models.CoastalErosionReading) float64 {
	score := math.Min(1, r.Shoreline.ErosionRate/3) * 0.3
	score += math.Min(1, r.Hydrodynamics.WaveEnergy/300) * 0.25
	score += math.Max(0, (50-r.Shoreline.BeachWidth)/40) * 0.2
	score += (1 - r.Protection.ArtificialStructures.EffectivenessRating) * 0.15
	score += (1 - r.Protection.NaturalBarriers.Vegetation) * 0.1
	return clamp01(score)
}

// PollutionScore weighs turbidity, oxygen depletion, the chemical pollutant
// loads and biodiversity loss.
func PollutionScore(r models.PollutionReading) float64 {
	score := math.Min(1, r.WaterQuality.Turbidity/50) * 0.2
	score += math.Max(0, (8-r.WaterQuality.DissolvedOxygen)/6) * 0.2
	score += math.Min(1, r.Chemicals.NitrateLevel/15) * 0.15
	score += math.Min(1, r.Chemicals.PhosphateLevel/8) * 0.15
	score += math.Min(1, r.Chemicals.Hydrocarbons/10) * 0.15
	score += (1 - r.Biological.BiodiversityIndex) * 0.15
	return clamp01(score)
}

// LiveThreshold is the per-hazard minimum risk score at which the live
// prediction surface flags a reading as alert-worthy. Distinct from the
// severity ladder used by the alert monitor.
func LiveThreshold(h models.HazardType) float64 {
	switch h {
	case models.HazardStormSurge:
		return 0.65
	case models.HazardCoastalErosion:
		return 0.6
	case models.HazardWaterPollution:
		return 0.75
	default:
		return 0.7
	}
}

// ShouldTrigger applies LiveThreshold to a computed score.
func ShouldTrigger(h models.HazardType, score float64) bool {
	return score > LiveThreshold(h)
}

// RiskLevel is the coarse label the live prediction surface attaches to a
// score. Independent of the alert monitor's severity classification.
func RiskLevel(score float64) models.AlertSeverity {
	switch {
	case score > 0.8:
		return models.SeverityExtreme
	case score > 0.6:
		return models.SeverityHigh
	case score > 0.4:
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
