// Package analytics is the pull-history statistics engine. Every analyzer
// is a stateless pure function over an in-memory record sequence plus a
// pity rule; the engine owns no long-lived state and never persists
// anything, so independent analyses can run concurrently without locking.
package analytics

import (
	"gacha-tracker/internal/domain"
)

// Report is the assembled output of every analyzer, produced fresh on each
// invocation and serializable as one nested document.
type Report struct {
	Basic        BasicStats          `json:"basic"`
	TimeAnalysis TimeAnalysis        `json:"timeAnalysis"`
	Pity         PityAnalysis        `json:"pityAnalysis"`
	Items        ItemAnalysis        `json:"itemAnalysis"`
	Probability  ProbabilityAnalysis `json:"probabilityAnalysis"`
	Advanced     AdvancedStats       `json:"advanced"`
}

// Analyze runs the full analyzer fan-out over one filtered record set.
// Records may arrive in any order; chronology is established internally.
// The only possible error is an unparsable record timestamp, which the
// record store contract is supposed to have filtered out.
func Analyze(records []domain.PullRecord, rule PityRule) (*Report, error) {
	pulls, err := prepare(records)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Basic:        computeBasicStats(pulls),
		TimeAnalysis: computeTimeAnalysis(pulls),
		Pity:         computePityAnalysis(pulls, rule),
		Items:        computeItemAnalysis(pulls),
		Probability:  computeProbabilityAnalysis(pulls, rule),
		Advanced:     computeAdvancedStats(pulls, rule),
	}

	avgDaily := 0.0
	if tr := report.TimeAnalysis.TimeRange; tr != nil && tr.Days > 0 {
		avgDaily = float64(len(pulls)) / float64(tr.Days)
	}
	report.Advanced.RecommendedNextPulls = recommendNextPulls(report.Pity.CurrentPity, rule, avgDaily)

	return report, nil
}
