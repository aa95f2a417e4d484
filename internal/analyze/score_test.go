package analyze

import (
	"math"
	"testing"

	"github.com/theirongolddev/ctrail/internal/model"
)

func TestScoreZeroMetrics(t *testing.T) {
	q := Score(model.AnalysisMetrics{})

	if q.Engagement != 50 {
		t.Errorf("Engagement = %.2f, want 50", q.Engagement)
	}
	if q.Clarity != 70 {
		t.Errorf("Clarity = %.2f, want 70", q.Clarity)
	}
	if q.Productivity != 40 {
		t.Errorf("Productivity = %.2f, want 40", q.Productivity)
	}
	if math.Abs(q.Overall-160.0/3) > 1e-9 {
		t.Errorf("Overall = %.4f, want %.4f", q.Overall, 160.0/3)
	}
}

func TestScoreFormulas(t *testing.T) {
	tests := []struct {
		name             string
		m                model.AnalysisMetrics
		wantEngagement   float64
		wantClarity      float64
		wantProductivity float64
	}{
		{
			name:             "enthusiasm bonus capped at 30",
			m:                model.AnalysisMetrics{EnthusiasmMarkers: 10},
			wantEngagement:   80, // 50 + min(100,30)
			wantClarity:      70,
			wantProductivity: 40,
		},
		{
			name:             "exchange bonus capped at 20",
			m:                model.AnalysisMetrics{Exchanges: 100},
			wantEngagement:   70, // 50 + min(200,20)
			wantClarity:      70,
			wantProductivity: 40,
		},
		{
			name:             "confusion hits engagement and clarity",
			m:                model.AnalysisMetrics{ConfusionMarkers: 2},
			wantEngagement:   40, // 50 - 10
			wantClarity:      50, // 70 - 20
			wantProductivity: 40,
		},
		{
			name:             "questions only penalized past exchanges",
			m:                model.AnalysisMetrics{Exchanges: 4, QuestionsAsked: 9},
			wantEngagement:   58, // 50 + (4/10)*20
			wantClarity:      60, // 70 - (9-4)*2
			wantProductivity: 40,
		},
		{
			name:             "questions below exchanges cost nothing",
			m:                model.AnalysisMetrics{Exchanges: 10, QuestionsAsked: 5},
			wantEngagement:   70,
			wantClarity:      70,
			wantProductivity: 40,
		},
		{
			name:             "code and compaction bonuses capped",
			m:                model.AnalysisMetrics{CodeBlocks: 10, CompactionIndicators: 10},
			wantEngagement:   50,
			wantClarity:      70,
			wantProductivity: 100, // 40 + min(150,40) + min(50,20)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Score(tt.m)
			if math.Abs(q.Engagement-tt.wantEngagement) > 1e-9 {
				t.Errorf("Engagement = %.2f, want %.2f", q.Engagement, tt.wantEngagement)
			}
			if math.Abs(q.Clarity-tt.wantClarity) > 1e-9 {
				t.Errorf("Clarity = %.2f, want %.2f", q.Clarity, tt.wantClarity)
			}
			if math.Abs(q.Productivity-tt.wantProductivity) > 1e-9 {
				t.Errorf("Productivity = %.2f, want %.2f", q.Productivity, tt.wantProductivity)
			}
			wantOverall := (tt.wantEngagement + tt.wantClarity + tt.wantProductivity) / 3
			if math.Abs(q.Overall-wantOverall) > 1e-9 {
				t.Errorf("Overall = %.2f, want %.2f", q.Overall, wantOverall)
			}
		})
	}
}

func TestScoreBounded(t *testing.T) {
	// Every score stays in [0,100] over a grid of extreme inputs.
	values := []int{0, 1, 5, 50, 1000}

	for _, exch := range values {
		for _, conf := range values {
			for _, q := range values {
				m := model.AnalysisMetrics{
					Exchanges:            exch,
					CodeBlocks:           q,
					QuestionsAsked:       q,
					EnthusiasmMarkers:    exch,
					ConfusionMarkers:     conf,
					CompactionIndicators: conf,
				}
				quality := Score(m)
				for name, score := range map[string]float64{
					"engagement":   quality.Engagement,
					"clarity":      quality.Clarity,
					"productivity": quality.Productivity,
					"overall":      quality.Overall,
				} {
					if score < 0 || score > 100 {
						t.Fatalf("%s = %.2f out of [0,100] for %+v", name, score, m)
					}
				}
			}
		}
	}
}
