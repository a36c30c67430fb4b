// Package generator produces synthetic sensor readings for the four coastal
// hazard types. Every reading is driven by a single root intensity draw in
// [0,1) that correlates the derived fields, with independent jitter per field
// and a sine-of-wall-clock oscillation layered on top to simulate tidal,
// diurnal and seasonal variation.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

const yearMillis = 1000 * 60 * 60 * 24 * 365

// Generator holds the random source and clock for one feed loop. It is not
// safe for concurrent use; each orchestrator owns its own instance.
type Generator struct {
	rng   *rand.Rand
	clock clockwork.Clock
}

func New(rng *rand.Rand, clock clockwork.Clock) *Generator {
	return &Generator{rng: rng, clock: clock}
}

// NewSeeded is a convenience constructor for production wiring: a fresh
// source seeded from the given value and the real clock.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)), clockwork.NewRealClock())
}

// Generate produces one reading of the requested hazard type anchored at the
// given region. It always succeeds.
func (g *Generator) Generate(hazard models.HazardType, region models.Region) models.Reading {
	switch hazard {
	case models.HazardStormSurge:
		return g.StormSurge(region)
	case models.HazardCoastalErosion:
		return g.CoastalErosion(region)
	case models.HazardWaterPollution:
		return g.Pollution(region)
	default:
		return g.Cyclone(region)
	}
}

func (g *Generator) observation(region models.Region, jitter float64) models.Observation {
	return models.Observation{
		Timestamp: g.clock.Now(),
		Latitude:  region.Lat + (g.rng.Float64()-0.5)*jitter,
		Longitude: region.Long + (g.rng.Float64()-0.5)*jitter,
		Region:    region.Region,
	}
}

// Cyclone simulates a developing cyclone system near the region.
func (g *Generator) Cyclone(region models.Region) models.CycloneReading {
	intensity := g.rng.Float64()
	millis := float64(g.clock.Now().UnixMilli())
	timeVariation := math.Sin(millis/10000) * 0.3

	speed := 20 + intensity*150 + (g.rng.Float64()-0.5)*20

	var landfallETA *float64
	if intensity > 0.7 {
		eta := math.Round(48 - intensity*24)
		landfallETA = &eta
	}
	var intensification float64
	if intensity > 0.6 {
		intensification = (intensity - 0.6) * 2.5
	}

	return models.CycloneReading{
		Observation: g.observation(region, 0.1),

		CentralPressure:  1013 - intensity*40 + (g.rng.Float64()-0.5)*5,
		PressureTrend:    -2*intensity + (g.rng.Float64()-0.5)*1.5,
		SeaLevelPressure: 1015 - intensity*35 + (g.rng.Float64()-0.5)*3,

		Speed:         speed,
		Direction:     180 + (g.rng.Float64()-0.5)*60,
		Gusts:         25 + intensity*180 + (g.rng.Float64()-0.5)*25,
		VerticalShear: 5 + g.rng.Float64()*15,

		SeaSurfaceTemp: 26 + intensity*4 + timeVariation,
		WaveHeight:     1 + intensity*8 + (g.rng.Float64()-0.5)*2,
		TidalLevel:     2.5 + intensity*2 + math.Sin(millis/6000)*0.8,

		Temperature:   28 + intensity*3 + timeVariation,
		Humidity:      70 + intensity*25 + (g.rng.Float64()-0.5)*10,
		Precipitation: intensity*50 + (g.rng.Float64()-0.5)*20,
		Visibility:    10 - intensity*8,
		CloudCover:    30 + intensity*60,

		CloudTopTemp:       -40 - intensity*30,
		Vorticity:          intensity * 0.001,
		Divergence:         -intensity * 0.0005,
		ConvectiveActivity: intensity * 0.8,

		CycloneFormationProbability: math.Min(0.95, intensity*1.2),
		IntensificationRate:         intensification,
		LandfallETA:                 landfallETA,
		Category:                    CycloneCategory(speed),
	}
}

// StormSurge simulates coastal water-level and wave conditions.
func (g *Generator) StormSurge(region models.Region) models.StormSurgeReading {
	intensity := g.rng.Float64()
	millis := float64(g.clock.Now().UnixMilli())
	tidalCycle := math.Sin(millis/8000) * 0.4

	currentLevel := 2.0 + intensity*4 + tidalCycle

	var rateOfRise, inundationDepth, inundationExtent float64
	if intensity > 0.5 {
		rateOfRise = intensity * 0.8
	}
	if intensity > 0.3 {
		inundationDepth = intensity * 2.5
		inundationExtent = intensity * 1000
	}
	var timeToImpact *float64
	if intensity > 0.5 {
		t := math.Round(8 - intensity*6)
		timeToImpact = &t
	}

	return models.StormSurgeReading{
		Observation: g.observation(region, 0.05),

		WaterLevel: models.WaterLevel{
			CurrentLevel:   currentLevel,
			PredictedLevel: 2.2 + intensity*3.8,
			Anomaly:        intensity * 3.5,
			RateOfRise:     rateOfRise,
			MaxRecorded:    3.0 + intensity*5,
		},
		Waves: models.WaveConditions{
			SignificantHeight: 1.5 + intensity*6,
			MaxHeight:         2.0 + intensity*8,
			Period:            8 + intensity*4,
			Direction:         180 + (g.rng.Float64()-0.5)*45,
			BreakingIntensity: clamp01(intensity),
		},
		Meteorology: models.Meteorology{
			WindSpeed:           15 + intensity*80,
			WindDirection:       160 + (g.rng.Float64()-0.5)*60,
			AtmosphericPressure: 1010 - intensity*25,
			StormDistance:       500 - intensity*400,
		},
		Impact: models.SurgeImpact{
			InundationDepth:    inundationDepth,
			InundationExtent:   inundationExtent,
			ErosionRate:        intensity * 0.5,
			InfrastructureRisk: tieredRisk(intensity, 0.6, 0.3),
		},
		RiskFactors: models.SurgeRisk{
			SurgeCategory:         SurgeCategory(currentLevel),
			FloodingProbability:   math.Min(0.95, intensity*1.3),
			EvacuationRecommended: intensity > 0.7,
			TimeToImpact:          timeToImpact,
		},
	}
}

// CoastalErosion simulates shoreline change observations. Erosion is a slow
// process, so the oscillation term here runs on a seasonal period.
func (g *Generator) CoastalErosion(region models.Region) models.CoastalErosionReading {
	intensity := g.rng.Float64()
	millis := float64(g.clock.Now().UnixMilli())
	seasonalFactor := math.Sin(millis/yearMillis*2*math.Pi) * 0.3

	timeToAction := 24
	switch {
	case intensity > 0.8:
		timeToAction = 1
	case intensity > 0.6:
		timeToAction = 6
	}

	return models.CoastalErosionReading{
		Observation: g.observation(region, 0.02),

		Shoreline: models.Shoreline{
			CurrentPosition:  100 - intensity*25,
			ErosionRate:      intensity*2.5 + seasonalFactor,
			AccretionRate:    math.Max(0, (1-intensity)*0.8),
			ShorelineRetreat: intensity * 15,
			BeachWidth:       50 - intensity*30,
		},
		Hydrodynamics: models.Hydrodynamics{
			WaveEnergy:      50 + intensity*200,
			WaveHeight:      1.0 + intensity*3,
			WavePeriod:      8 + intensity*4,
			WaveAngle:       45 + (g.rng.Float64()-0.5)*90,
			TidalRange:      2.5 + (g.rng.Float64()-0.5)*1.5,
			CurrentVelocity: 0.2 + intensity*0.8,
		},
		Protection: models.CoastalProtection{
			NaturalBarriers: models.NaturalBarriers{
				Vegetation:       clamp01(1.0 - intensity*0.6),
				DuneHeight:       3 + (1-intensity)*4,
				MangroveCoverage: clamp01((1 - intensity) * 0.8),
			},
			ArtificialStructures: models.ArtificialStructures{
				Seawalls:            g.rng.Float64() > 0.6,
				Breakwaters:         g.rng.Float64() > 0.8,
				Groynes:             g.rng.Float64() > 0.7,
				EffectivenessRating: clamp01(1.0 - intensity*0.4),
			},
		},
		RiskFactors: models.ErosionRisk{
			ErosionSeverity:      ErosionSeverity(intensity),
			UrgencyLevel:         erosionUrgency(intensity),
			InterventionRequired: intensity > 0.6,
			TimeToAction:         timeToAction,
		},
	}
}

// Pollution simulates a water quality sampling station.
func (g *Generator) Pollution(region models.Region) models.PollutionReading {
	intensity := g.rng.Float64()
	millis := float64(g.clock.Now().UnixMilli())
	timeVariation := math.Sin(millis/12000) * 0.2

	return models.PollutionReading{
		Observation: g.observation(region, 0.05),

		WaterQuality: models.WaterQuality{
			PH:              7.0 + intensity*2 + timeVariation,
			DissolvedOxygen: 8.0 - intensity*4,
			Turbidity:       2 + intensity*30,
			Salinity:        35 + (g.rng.Float64()-0.5)*2,
			Temperature:     25 + intensity*8 + timeVariation,
			Conductivity:    50000 + intensity*5000,
		},
		Chemicals: models.ChemicalPollutants{
			NitrateLevel:   intensity * 15,
			PhosphateLevel: intensity * 5,
			Ammonia:        intensity * 3,
			Hydrocarbons:   intensity * 10,
			Pesticides:     intensity * 2,
		},
		Biological: models.BiologicalIndicators{
			ColiformCount:      int(intensity * 10000),
			AlgaeConcentration: intensity * 50,
			BiodiversityIndex:  clamp01(1.0 - intensity*0.8),
		},
		RiskFactors: models.PollutionRisk{
			OverallPollutionLevel: PollutionLevel(intensity),
			HumanHealthRisk:       tieredRisk(intensity, 0.6, 0.3),
			MarineLifeRisk:        tieredRisk(intensity, 0.5, 0.25),
			CleanupRequired:       intensity > 0.5,
			AlertAuthorities:      intensity > 0.7,
		},
	}
}

// History produces backdated readings at a fixed step, newest last. It mirrors
// the live generators exactly apart from the rewritten timestamps.
func (g *Generator) History(hazard models.HazardType, region models.Region, points int, step time.Duration) []models.Reading {
	now := g.clock.Now()
	out := make([]models.Reading, 0, points)
	for i := points - 1; i >= 0; i-- {
		ts := now.Add(-time.Duration(i) * step)
		switch hazard {
		case models.HazardStormSurge:
			r := g.StormSurge(region)
			r.Timestamp = ts
			out = append(out, r)
		case models.HazardCoastalErosion:
			r := g.CoastalErosion(region)
			r.Timestamp = ts
			out = append(out, r)
		case models.HazardWaterPollution:
			r := g.Pollution(region)
			r.Timestamp = ts
			out = append(out, r)
		default:
			r := g.Cyclone(region)
			r.Timestamp = ts
			out = append(out, r)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func tieredRisk(intensity, high, moderate float64) string {
	switch {
	case intensity > high:
		return "HIGH"
	case intensity > moderate:
		return "MODERATE"
	default:
		return "LOW"
	}
}
