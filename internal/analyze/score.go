package analyze

import "github.com/theirongolddev/ctrail/internal/model"

// Score weights. Each bonus or penalty is capped so no single signal can
// dominate a score.
const (
	engagementBase    = 50.0
	enthusiasmWeight  = 10.0
	enthusiasmCap     = 30.0
	exchangeWeight    = 20.0
	exchangeCap       = 20.0
	engConfusionCap   = 20.0
	clarityBase       = 70.0
	confusionWeight   = 10.0
	confusionCap      = 40.0
	questionWeight    = 2.0
	questionCap       = 20.0
	productivityBase  = 40.0
	codeBlockWeight   = 15.0
	codeBlockCap      = 40.0
	compactionWeight  = 5.0
	compactionCap     = 20.0
	engConfusionSlope = 5.0
)

// Score derives the four quality scores from a metrics record. Pure and
// deterministic: no I/O, no hidden state, always succeeds.
func Score(m model.AnalysisMetrics) model.SessionQuality {
	engagement := scoreEngagement(m)
	clarity := scoreClarity(m)
	productivity := scoreProductivity(m)

	return model.SessionQuality{
		Engagement:   engagement,
		Clarity:      clarity,
		Productivity: productivity,
		Overall:      (engagement + clarity + productivity) / 3,
	}
}

func scoreEngagement(m model.AnalysisMetrics) float64 {
	enthusiasm := capAt(float64(m.EnthusiasmMarkers)*enthusiasmWeight, enthusiasmCap)
	exchanges := capAt(float64(m.Exchanges)/10*exchangeWeight, exchangeCap)
	confusion := capAt(float64(m.ConfusionMarkers)*engConfusionSlope, engConfusionCap)

	return clamp(engagementBase + enthusiasm + exchanges - confusion)
}

func scoreClarity(m model.AnalysisMetrics) float64 {
	confusion := capAt(float64(m.ConfusionMarkers)*confusionWeight, confusionCap)

	// Questions only hurt clarity once they outnumber exchanges.
	questions := 0.0
	if m.QuestionsAsked > m.Exchanges {
		questions = capAt(float64(m.QuestionsAsked-m.Exchanges)*questionWeight, questionCap)
	}

	return clamp(clarityBase - confusion - questions)
}

func scoreProductivity(m model.AnalysisMetrics) float64 {
	code := capAt(float64(m.CodeBlocks)*codeBlockWeight, codeBlockCap)
	compaction := capAt(float64(m.CompactionIndicators)*compactionWeight, compactionCap)

	return clamp(productivityBase + code + compaction)
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
