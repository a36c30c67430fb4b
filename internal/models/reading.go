package models

import "time"

// Reading is the tagged union over the four per-hazard reading structs.
type Reading interface {
	Hazard() HazardType
}

// Observation carries the fields common to every reading.
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Region    string    `json:"region"`
}

type CycloneReading struct {
	Observation

	CentralPressure  float64 `json:"centralPressure"` // hPa
	PressureTrend    float64 `json:"pressureTrend"`   // hPa/hour
	SeaLevelPressure float64 `json:"seaLevelPressure"`

	Speed         float64 `json:"speed"` // km/h
	Direction     float64 `json:"direction"`
	Gusts         float64 `json:"gusts"`
	VerticalShear float64 `json:"verticalShear"` // m/s

	SeaSurfaceTemp float64 `json:"seaSurfaceTemp"` // °C
	WaveHeight     float64 `json:"waveHeight"`
	TidalLevel     float64 `json:"tidalLevel"`

	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`      // %
	Precipitation float64 `json:"precipitation"` // mm/hour
	Visibility    float64 `json:"visibility"`    // km
	CloudCover    float64 `json:"cloudCover"`    // %

	CloudTopTemp       float64 `json:"cloudTopTemp"` // °C, colder means higher clouds
	Vorticity          float64 `json:"vorticity"`    // s⁻¹
	Divergence         float64 `json:"divergence"`
	ConvectiveActivity float64 `json:"convectiveActivity"` // 0-1

	CycloneFormationProbability float64  `json:"cycloneFormationProbability"`
	IntensificationRate         float64  `json:"intensificationRate"`
	LandfallETA                 *float64 `json:"landfallETA"` // hours, nil when no landfall expected
	Category                    int      `json:"category"`    // IMD scale 0-5
}

func (CycloneReading) Hazard() HazardType { return HazardCyclone }

type WaterLevel struct {
	CurrentLevel   float64 `json:"currentLevel"` // m above mean sea level
	PredictedLevel float64 `json:"predictedLevel"`
	Anomaly        float64 `json:"anomaly"`
	RateOfRise     float64 `json:"rateOfRise"` // m/hour
	MaxRecorded    float64 `json:"maxRecorded"`
}

type WaveConditions struct {
	SignificantHeight float64 `json:"significantHeight"` // m
	MaxHeight         float64 `json:"maxHeight"`
	Period            float64 `json:"period"` // s
	Direction         float64 `json:"direction"`
	BreakingIntensity float64 `json:"breakingIntensity"` // 0-1
}

type Meteorology struct {
	WindSpeed           float64 `json:"windSpeed"` // km/h
	WindDirection       float64 `json:"windDirection"`
	AtmosphericPressure float64 `json:"atmosphericPressure"` // hPa
	StormDistance       float64 `json:"stormDistance"`       // km from coast
}

type SurgeImpact struct {
	InundationDepth    float64 `json:"inundationDepth"`  // m inland flooding
	InundationExtent   float64 `json:"inundationExtent"` // m inland
	ErosionRate        float64 `json:"erosionRate"`      // m/hour shoreline retreat
	InfrastructureRisk string  `json:"infrastructureRisk"`
}

type SurgeRisk struct {
	SurgeCategory         string   `json:"surgeLevel"`
	FloodingProbability   float64  `json:"floodingProbability"`
	EvacuationRecommended bool     `json:"evacuationRecommended"`
	TimeToImpact          *float64 `json:"timeToImpact"` // hours, nil outside surge conditions
}

type StormSurgeReading struct {
	Observation

	WaterLevel  WaterLevel     `json:"waterLevel"`
	Waves       WaveConditions `json:"waves"`
	Meteorology Meteorology    `json:"meteorology"`
	Impact      SurgeImpact    `json:"impact"`
	RiskFactors SurgeRisk      `json:"riskFactors"`
}

func (StormSurgeReading) Hazard() HazardType { return HazardStormSurge }

type Shoreline struct {
	CurrentPosition  float64 `json:"currentPosition"` // m from reference point
	ErosionRate      float64 `json:"erosionRate"`     // m/year
	AccretionRate    float64 `json:"accretionRate"`
	ShorelineRetreat float64 `json:"shorelineRetreat"` // total m retreated
	BeachWidth       float64 `json:"beachWidth"`       // m
}

type Hydrodynamics struct {
	WaveEnergy      float64 `json:"waveEnergy"` // kW/m
	WaveHeight      float64 `json:"waveHeight"`
	WavePeriod      float64 `json:"wavePeriod"`
	WaveAngle       float64 `json:"waveAngle"`
	TidalRange      float64 `json:"tidalRange"`
	CurrentVelocity float64 `json:"currentVelocity"` // m/s alongshore
}

type NaturalBarriers struct {
	Vegetation       float64 `json:"vegetation"` // 0-1 coverage
	DuneHeight       float64 `json:"duneHeight"` // m
	MangroveCoverage float64 `json:"mangroveCoverage"`
}

type ArtificialStructures struct {
	Seawalls            bool    `json:"seawalls"`
	Breakwaters         bool    `json:"breakwaters"`
	Groynes             bool    `json:"groynes"`
	EffectivenessRating float64 `json:"effectivenessRating"` // 0-1
}

type CoastalProtection struct {
	NaturalBarriers      NaturalBarriers      `json:"naturalBarriers"`
	ArtificialStructures ArtificialStructures `json:"artificialStructures"`
}

type ErosionRisk struct {
	ErosionSeverity      string `json:"erosionSeverity"`
	UrgencyLevel         string `json:"urgencyLevel"`
	InterventionRequired bool   `json:"interventionRequired"`
	TimeToAction         int    `json:"timeToAction"` // months
}

type CoastalErosionReading struct {
	Observation

	Shoreline     Shoreline         `json:"shoreline"`
	Hydrodynamics Hydrodynamics     `json:"hydrodynamics"`
	Protection    CoastalProtection `json:"protection"`
	RiskFactors   ErosionRisk       `json:"riskFactors"`
}

func (CoastalErosionReading) Hazard() HazardType { return HazardCoastalErosion }

type WaterQuality struct {
	PH              float64 `json:"pH"`
	DissolvedOxygen float64 `json:"dissolvedOxygen"` // mg/L
	Turbidity       float64 `json:"turbidity"`       // NTU
	Salinity        float64 `json:"salinity"`
	Temperature     float64 `json:"temperature"`
	Conductivity    float64 `json:"conductivity"` // µS/cm
}

type ChemicalPollutants struct {
	NitrateLevel   float64 `json:"nitrateLevel"`   // mg/L
	PhosphateLevel float64 `json:"phosphateLevel"` // mg/L
	Ammonia        float64 `json:"ammonia"`
	Hydrocarbons   float64 `json:"hydrocarbons"` // µg/L
	Pesticides     float64 `json:"pesticides"`
}

type BiologicalIndicators struct {
	ColiformCount      int     `json:"coliformCount"` // CFU/100ml
	AlgaeConcentration float64 `json:"algaeConcentration"`
	BiodiversityIndex  float64 `json:"biodiversityIndex"` // 0-1, higher is healthier
}

type PollutionRisk struct {
	OverallPollutionLevel string `json:"overallPollutionLevel"`
	HumanHealthRisk       string `json:"humanHealthRisk"`
	MarineLifeRisk        string `json:"marineLifeRisk"`
	CleanupRequired       bool   `json:"cleanupRequired"`
	AlertAuthorities      bool   `json:"alertAuthorities"`
}

type PollutionReading struct {
	Observation

	WaterQuality WaterQuality         `json:"waterQuality"`
	Chemicals    ChemicalPollutants   `json:"chemicals"`
	Biological   BiologicalIndicators `json:"biological"`
	RiskFactors  PollutionRisk        `json:"riskFactors"`
}

func (PollutionReading) Hazard() HazardType { return HazardWaterPollution }
