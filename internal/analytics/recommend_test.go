package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendNextPulls(t *testing.T) {
	tests := []struct {
		name        string
		currentPity int
		avgDaily    float64
		wantCode    string
		wantConf    int
	}{
		{"at soft pity", 75, 0, RecSoftPityContinue, 90},
		{"deep into soft pity", 88, 12, RecSoftPityContinue, 90},
		{"five short of soft pity", 70, 0, RecApproachingSoftPity, 75},
		{"just short of soft pity", 74, 9, RecApproachingSoftPity, 75},
		{"heavy pull pace", 10, 5.5, RecPaceHigh, 60},
		{"normal pace", 10, 5.0, RecNormalPace, 80},
		{"fresh account", 0, 0, RecNormalPace, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recommendNextPulls(tt.currentPity, testRule, tt.avgDaily)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantConf, rec.Confidence)
			assert.Equal(t, tt.currentPity, rec.CurrentPity)
		})
	}
}

func TestRecommendNextPulls_RoundsPace(t *testing.T) {
	rec := recommendNextPulls(0, testRule, 1.23456)
	assert.Equal(t, 1.23, rec.AvgDailyPulls)
}

func TestRecommendNextPulls_Deterministic(t *testing.T) {
	a := recommendNextPulls(42, testRule, 3.3)
	b := recommendNextPulls(42, testRule, 3.3)
	assert.Equal(t, a, b)
}
