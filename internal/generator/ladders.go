package generator

// CycloneCategory maps sustained wind speed in km/h onto the IMD 0-5 scale.
func CycloneCategory(windSpeed float64) int {
	switch {
	case windSpeed < 62:
		return 0 // depression
	case windSpeed < 88:
		return 1 // cyclonic storm
	case windSpeed < 118:
		return 2 // severe cyclonic storm
	case windSpeed < 166:
		return 3 // very severe cyclonic storm
	case windSpeed < 221:
		return 4 // extremely severe cyclonic storm
	default:
		return 5 // super cyclonic storm
	}
}

// SurgeCategory labels a water level in metres above mean sea level.
func SurgeCategory(waterLevel float64) string {
	switch {
	case waterLevel < 2.5:
		return "MINOR"
	case waterLevel < 3.5:
		return "MODERATE"
	case waterLevel < 4.5:
		return "MAJOR"
	case waterLevel < 5.5:
		return "EXTREME"
	default:
		return "CATASTROPHIC"
	}
}

// ErosionSeverity labels the root erosion intensity draw.
func ErosionSeverity(intensity float64) string {
	switch {
	case intensity < 0.2:
		return "STABLE"
	case intensity < 0.4:
		return "SLIGHT_EROSION"
	case intensity < 0.6:
		return "MODERATE_EROSION"
	case intensity < 0.8:
		return "SEVERE_EROSION"
	default:
		return "CATASTROPHIC_EROSION"
	}
}

func erosionUrgency(intensity float64) string {
	switch {
	case intensity > 0.7:
		return "IMMEDIATE"
	case intensity > 0.4:
		return "HIGH"
	default:
		return "MODERATE"
	}
}

// PollutionLevel labels the root pollution intensity draw.
func PollutionLevel(intensity float64) string {
	switch {
	case intensity < 0.2:
		return "CLEAN"
	case intensity < 0.4:
		return "SLIGHTLY_POLLUTED"
	case intensity < 0.6:
		return "MODERATELY_POLLUTED"
	case intensity < 0.8:
		return "HEAVILY_POLLUTED"
	default:
		return "CRITICALLY_POLLUTED"
	}
}
