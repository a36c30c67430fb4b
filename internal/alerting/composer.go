package alerting

import (
	"fmt"
	"math"
	"strings"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

// Compose builds the human-readable title and description for an alert.
// Pure string formatting; always succeeds.
func Compose(r models.Reading, severity models.AlertSeverity, score float64, region models.Region) (title, description string) {
	sev := capitalize(strings.ToLower(string(severity)))
	regionName := capitalize(region.Region)
	stateName := stateLabel(region.State)
	confidence := int(math.Round(score * 100))

	switch v := r.(type) {
	case models.CycloneReading:
		title = fmt.Sprintf("%s Cyclone Formation Risk - %s", sev, regionName)
		description = fmt.Sprintf(
			"Cyclone formation detected near %s, %s with %d%% probability. Wind speed: %.1f km/h, Central pressure: %.1f hPa. Immediate precautionary measures recommended.",
			regionName, stateName, confidence, v.Speed, v.CentralPressure)
	case models.StormSurgeReading:
		title = fmt.Sprintf("%s Storm Surge Warning - %s", sev, regionName)
		description = fmt.Sprintf(
			"Storm surge threat detected in %s, %s with %d%% confidence. Water level: %.1fm, Wave height: %.1fm. Coastal flooding possible.",
			regionName, stateName, confidence, v.WaterLevel.CurrentLevel, v.Waves.SignificantHeight)
	case models.CoastalErosionReading:
		title = fmt.Sprintf("%s Coastal Erosion Alert - %s", sev, regionName)
		description = fmt.Sprintf(
			"Accelerated coastal erosion detected in %s, %s with %d%% confidence. Erosion rate: %.2f m/year. Shoreline infrastructure at risk.",
			regionName, stateName, confidence, v.Shoreline.ErosionRate)
	case models.PollutionReading:
		title = fmt.Sprintf("%s Water Quality Alert - %s", sev, regionName)
		description = fmt.Sprintf(
			"Water quality degradation detected in %s, %s with %d%% confidence. Turbidity: %.1f NTU, DO: %.1f mg/L. Marine ecosystem under stress.",
			regionName, stateName, confidence, v.WaterQuality.Turbidity, v.WaterQuality.DissolvedOxygen)
	}
	return title, description
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// stateLabel turns a region-table state key like "tamil_nadu" into "Tamil Nadu".
func stateLabel(state string) string {
	words := strings.Split(strings.ReplaceAll(state, "_", " "), " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
