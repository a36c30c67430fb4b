package scoring

import "github.com/coastalwatch/hazard-engine/internal/models"

// cycloneTier holds the thresholds for one severity tier. A tier matches when
// ANY one of its conditions holds; a single strongly anomalous signal is
// enough to escalate even if every other field looks normal.
type cycloneTier struct {
	speed    float64 // >=, km/h
	pressure float64 // <=, hPa
	ml       float64 // >=
}

type pollutionTier struct {
	turbidity       float64 // >=, NTU
	dissolvedOxygen float64 // <=, mg/L
	ml              float64 // >=
}

type surgeTier struct {
	waterLevel float64 // >=, m
	waveHeight float64 // >=, m
	windSpeed  float64 // >=, km/h
	ml         float64 // >=
}

type erosionTier struct {
	erosionRate float64 // >=, m/year
	waveEnergy  float64 // >=, kW/m
	ml          float64 // >=
}

var (
	cycloneTiers = struct{ moderate, high, extreme cycloneTier }{
		moderate: cycloneTier{speed: 120, pressure: 980, ml: 0.6},
		high:     cycloneTier{speed: 150, pressure: 950, ml: 0.75},
		extreme:  cycloneTier{speed: 180, pressure: 920, ml: 0.85},
	}
	pollutionTiers = struct{ moderate, high, extreme pollutionTier }{
		moderate: pollutionTier{turbidity: 15, dissolvedOxygen: 4, ml: 0.6},
		high:     pollutionTier{turbidity: 25, dissolvedOxygen: 3, ml: 0.75},
		extreme:  pollutionTier{turbidity: 40, dissolvedOxygen: 2, ml: 0.85},
	}
	surgeTiers = struct{ moderate, high, extreme surgeTier }{
		moderate: surgeTier{waterLevel: 3, waveHeight: 2.5, windSpeed: 60, ml: 0.6},
		high:     surgeTier{waterLevel: 4.5, waveHeight: 4, windSpeed: 80, ml: 0.75},
		extreme:  surgeTier{waterLevel: 6, waveHeight: 6, windSpeed: 100, ml: 0.85},
	}
	erosionTiers = struct{ moderate, high, extreme erosionTier }{
		moderate: erosionTier{erosionRate: 2, waveEnergy: 150, ml: 0.6},
		high:     erosionTier{erosionRate: 3.5, waveEnergy: 200, ml: 0.75},
		extreme:  erosionTier{erosionRate: 5, waveEnergy: 300, ml: 0.85},
	}
)

// Classify maps a reading and its risk score onto one severity. Tiers are
// checked extreme first, then high, then moderate; anything below moderate
// is LOW and produces no alert.
func Classify(r models.Reading, score float64) models.AlertSeverity {
	switch v := r.(type) {
	case models.CycloneReading:
		return ClassifyCyclone(v, score)
	case models.StormSurgeReading:
		return ClassifyStormSurge(v, score)
	case models.CoastalErosionReading:
		return ClassifyErosion(v, score)
	case models.PollutionReading:
		return ClassifyPollution(v, score)
	default:
		return models.SeverityLow
	}
}

func ClassifyCyclone(r models.CycloneReading, score float64) models.AlertSeverity {
	match := func(t cycloneTier) bool {
		return r.Speed >= t.speed || r.CentralPressure <= t.pressure || score >= t.ml
	}
	switch {
	case match(cycloneTiers.extreme):
		return models.SeverityExtreme
	case match(cycloneTiers.high):
		return models.SeverityHigh
	case match(cycloneTiers.moderate):
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

func ClassifyPollution(r models.PollutionReading, score float64) models.AlertSeverity {
	match := func(t pollutionTier) bool {
		return r.WaterQuality.Turbidity >= t.turbidity ||
			r.WaterQuality.DissolvedOxygen <= t.dissolvedOxygen ||
			score >= t.ml
	}
	switch {
	case match(pollutionTiers.extreme):
		return models.SeverityExtreme
	case match(pollutionTiers.high):
		return models.SeverityHigh
	case match(pollutionTiers.moderate):
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

func ClassifyStormSurge(r models.StormSurgeReading, score float64) models.AlertSeverity {
	match := func(t surgeTier) bool {
		return r.WaterLevel.CurrentLevel >= t.waterLevel ||
			r.Waves.SignificantHeight >= t.waveHeight ||
			r.Meteorology.WindSpeed >= t.windSpeed ||
			score >= t.ml
	}
	switch {
	case match(surgeTiers.extreme):
		return models.SeverityExtreme
	case match(surgeTiers.high):
		return models.SeverityHigh
	case match(surgeTiers.moderate):
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

func ClassifyErosion(r models.CoastalErosionReading, score float64) models.AlertSeverity {
	match := func(t erosionTier) bool {
		return r.Shoreline.ErosionRate >= t.erosionRate ||
			r.Hydrodynamics.WaveEnergy >= t.waveEnergy ||
			score >= t.ml
	}
	switch {
	case match(erosionTiers.extreme):
		return models.SeverityExtreme
	case match(erosionTiers.high):
		return models.SeverityHigh
	case match(erosionTiers.moderate):
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}
