package analytics

// Recommendation codes, resolved to display text by the locale layer.
const (
	RecSoftPityContinue    = "soft_pity_continue"
	RecApproachingSoftPity = "approaching_soft_pity"
	RecPaceHigh            = "pace_high"
	RecNormalPace          = "normal_pace"
)

// Recommendation is the rule-based "when to pull next" suggestion. It is a
// pure function of the current pity, the rule, and the daily pull pace —
// no randomness, no clock reads.
type Recommendation struct {
	Code          string  `json:"code"`
	Message       string  `json:"message,omitempty"`
	Confidence    int     `json:"confidence"`
	CurrentPity   int     `json:"currentPity"`
	AvgDailyPulls float64 `json:"avgDailyPulls"` // 2 decimals
}

func recommendNextPulls(currentPity int, rule PityRule, avgDailyPulls float64) *Recommendation {
	rec := &Recommendation{
		CurrentPity:   currentPity,
		AvgDailyPulls: round2(avgDailyPulls),
	}

	switch {
	case currentPity >= rule.SoftPityStart:
		rec.Code = RecSoftPityContinue
		rec.Confidence = 90
	case currentPity >= rule.SoftPityStart-5:
		rec.Code = RecApproachingSoftPity
		rec.Confidence = 75
	case avgDailyPulls > 5:
		rec.Code = RecPaceHigh
		rec.Confidence = 60
	default:
		rec.Code = RecNormalPace
		rec.Confidence = 80
	}
	return rec
}
