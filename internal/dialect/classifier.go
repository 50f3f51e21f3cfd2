package dialect

import "cascade/internal/syntax"

const dialectCount = int(syntax.DialectLESS) + 1

// MinScore is the total a preprocessor dialect needs before Guess prefers it
// over plain CSS.
const MinScore = 4

// Classification is the result of scoring evidence for a file.
type Classification struct {
	Dialect         syntax.Dialect
	Score           int
	TotalScore      int
	Confidence      float64
	RunnerUp        syntax.Dialect
	RunnerUpScore   int
	ObservedSignals int
}

// Classifier scores evidence and chooses a dominant dialect. Plain CSS wins
// whenever no preprocessor reaches MinScore.
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	hints := e.Hints()
	if len(hints) == 0 {
		return Classification{Dialect: syntax.DialectCSS}
	}

	best, bestScore := syntax.DialectCSS, 0
	runner, runnerScore := syntax.DialectCSS, 0
	for _, d := range []syntax.Dialect{syntax.DialectSCSS, syntax.DialectLESS} {
		score := e.Score(d)
		if score > bestScore {
			runner, runnerScore = best, bestScore
			best, bestScore = d, score
			continue
		}
		if score > runnerScore {
			runner, runnerScore = d, score
		}
	}
	// ничья между препроцессорами ничего не доказывает
	if bestScore < MinScore || bestScore == runnerScore {
		best, bestScore = syntax.DialectCSS, e.Score(syntax.DialectCSS)
	}

	conf := 0.0
	if e.total > 0 {
		conf = float64(bestScore) / float64(e.total)
	}
	return Classification{
		Dialect:         best,
		Score:           bestScore,
		TotalScore:      e.total,
		Confidence:      conf,
		RunnerUp:        runner,
		RunnerUpScore:   runnerScore,
		ObservedSignals: len(hints),
	}
}
