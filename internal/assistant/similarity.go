package assistant

import "strings"

const (
	// candidateThreshold is the score a scanned example must strictly
	// exceed before it may replace the running best.
	candidateThreshold = 0.3
	// acceptThreshold is the score the best example must strictly exceed
	// for the matcher to report a match at all. Kept separate from the
	// Responder's own gate; collapsing the two changes behavior.
	acceptThreshold = 0.7

	// Tokens this short carry no signal and are dropped before overlap
	// counting. The length cutoff stands in for a stop-word list.
	shortTokenLen = 2
)

// bestTrainingMatch scans the example log for the question most similar
// to the query. Similarity is the count of shared filtered tokens over
// the longer of the two raw word counts; the numerator uses filtered
// tokens while the denominator keeps raw sentence lengths.
func bestTrainingMatch(query string, examples []TrainingExample) (TrainingExample, float64, bool) {
	if len(examples) == 0 {
		return TrainingExample{}, 0, false
	}

	queryWords := strings.Fields(strings.ToLower(query))
	queryTokens := dropShortTokens(queryWords)

	var best TrainingExample
	var bestScore float64
	found := false

	for _, ex := range examples {
		exampleWords := strings.Fields(strings.ToLower(ex.Question))
		score := similarity(queryTokens, len(queryWords), exampleWords)
		if score > candidateThreshold && score > bestScore {
			best = ex
			bestScore = score
			found = true
		}
	}

	if !found || bestScore <= acceptThreshold {
		return TrainingExample{}, 0, false
	}
	return best, bestScore, true
}

func similarity(queryTokens []string, rawQueryLen int, exampleWords []string) float64 {
	longer := rawQueryLen
	if len(exampleWords) > longer {
		longer = len(exampleWords)
	}
	if longer == 0 {
		return 0
	}

	exampleSet := make(map[string]struct{}, len(exampleWords))
	for _, w := range dropShortTokens(exampleWords) {
		exampleSet[w] = struct{}{}
	}

	// Each query-side occurrence counts once, even against the same
	// example token.
	shared := 0
	for _, w := range queryTokens {
		if _, ok := exampleSet[w]; ok {
			shared++
		}
	}

	return float64(shared) / float64(longer)
}

func dropShortTokens(words []string) []string {
	out := words[:0:0]
	for _, w := range words {
		if len(w) > shortTokenLen {
			out = append(out, w)
		}
	}
	return out
}
