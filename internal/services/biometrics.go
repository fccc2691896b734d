package services

import "avira-backend/internal/models"

// Fixed analyzer thresholds. Callers needing different cutoffs fork the
// analyzer; they are deliberately not configurable per request.
const (
	heartRateHigh   = 100.0
	heartRateLow    = 60.0
	stressHigh      = 70.0
	sleepQualityLow = 70.0
	stepsLow        = 5000
	oxygenLow       = 95.0
)

// AnalyzeBiometrics maps a snapshot to plain-language observations for the
// prompt. Rules run in a fixed order and each contributes at most one
// insight; absent readings are skipped. If nothing fires, a single
// "within normal ranges" insight is returned.
func AnalyzeBiometrics(data *models.BiometricData) []string {
	var insights []string

	if data.HeartRate != nil {
		if *data.HeartRate > heartRateHigh {
			insights = append(insights, "Elevated heart rate detected - this could indicate stress or recent physical activity")
		} else if *data.HeartRate < heartRateLow {
			insights = append(insights, "Lower than average heart rate - this could reflect good fitness or fatigue")
		}
	}

	if data.StressLevel != nil && *data.StressLevel > stressHigh {
		insights = append(insights, "High stress levels indicated by your readings")
	}

	if data.SleepQuality != nil && *data.SleepQuality < sleepQualityLow {
		insights = append(insights, "Sleep quality could use improvement")
	}

	if data.Steps != nil && *data.Steps < stepsLow {
		insights = append(insights, "Activity level today is lower than the recommended amount")
	}

	if data.OxygenLevel != nil && *data.OxygenLevel < oxygenLow {
		insights = append(insights, "Blood oxygen level is a bit concerning - consider following up with a clinician")
	}

	if len(insights) == 0 {
		insights = append(insights, "Your readings look within normal ranges")
	}

	return insights
}
