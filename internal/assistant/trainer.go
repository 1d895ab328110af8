package assistant

import (
	"fmt"
	"time"
)

const (
	// minTrainExamples is the smallest example log Train will work with.
	minTrainExamples = 10

	// recentWindow bounds how many of the newest examples feed the
	// adaptive learning rate.
	recentWindow = 20
)

// TrainingStats summarizes one training pass. NewPatterns is a coarse
// placeholder estimate (10% of the example count), not a mined figure.
type TrainingStats struct {
	TotalExamples     int     `json:"total_examples"`
	AverageConfidence float64 `json:"average_confidence"`
	NewPatterns       int     `json:"new_patterns"`
}

// TrainingOutcome is the structured result of Train. Insufficient data
// is reported here with Success=false, never as an error.
type TrainingOutcome struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Stats   TrainingStats `json:"stats"`
}

// Train recomputes the user's training statistics and adapts the
// learning rate from the mean confidence of the most recent examples:
// the better recent answers score, the smaller the adjustments. It
// mutates st.LearningRate and st.LastTrainedAt in place; persisting the
// change is the caller's job. Train is re-entrant: repeated calls simply
// recompute and overwrite.
func Train(st *State) TrainingOutcome {
	return trainAt(st, time.Now())
}

func trainAt(st *State, now time.Time) TrainingOutcome {
	total := len(st.Examples)
	if total < minTrainExamples {
		return TrainingOutcome{
			Success: false,
			Message: fmt.Sprintf("need at least %d training examples, have %d", minTrainExamples, total),
			Stats:   TrainingStats{TotalExamples: total},
		}
	}

	var sum float64
	for _, ex := range st.Examples {
		sum += ex.Confidence
	}
	avg := sum / float64(total)

	recent := st.Examples
	if total > recentWindow {
		recent = st.Examples[total-recentWindow:]
	}
	var recentSum float64
	for _, ex := range recent {
		recentSum += ex.Confidence
	}
	recentAvg := recentSum / float64(len(recent))

	switch {
	case recentAvg > 0.8:
		st.LearningRate = 0.005
	case recentAvg > 0.6:
		st.LearningRate = 0.01
	default:
		st.LearningRate = 0.02
	}
	st.LastTrainedAt = now

	return TrainingOutcome{
		Success: true,
		Message: "training completed",
		Stats: TrainingStats{
			TotalExamples:     total,
			AverageConfidence: avg,
			NewPatterns:       total / 10,
		},
	}
}
