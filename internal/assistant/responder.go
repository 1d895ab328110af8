// Package assistant implements the per-user response engine: custom
// trigger matching, fuzzy matching over recorded training examples, a
// random fallback, and the offline trainer that adapts the learning
// rate. Everything here is pure computation over an in-memory snapshot
// of one user's State; persistence and transport belong to the caller.
package assistant

import (
	"log"
	"math/rand"
)

// Source tells where a resolved response came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceTraining Source = "training"
	SourceFallback Source = "fallback"
)

const (
	customConfidence   = 0.95
	fallbackConfidence = 0.3

	// trainingGate re-checks an accepted training match at the pipeline
	// level. A match scoring in (acceptThreshold, trainingGate] is
	// computed but rejected here and falls through to the fallback.
	trainingGate = 0.8
)

// ResolvedResponse is the outcome of one Resolve call. Confidence is
// always in [0,1].
type ResolvedResponse struct {
	Content         string            `json:"content"`
	Confidence      float64           `json:"confidence"`
	Source          Source            `json:"source"`
	MatchedExamples []TrainingExample `json:"matched_examples,omitempty"`
}

// Responder resolves queries against a user's State. The zero value is
// not usable; use NewResponder.
type Responder struct {
	pick func(n int) int // returns [0,n), injectable for tests
	logf func(format string, args ...any)
}

type Option func(*Responder)

// WithPick replaces the fallback phrase selector.
func WithPick(pick func(n int) int) Option {
	return func(r *Responder) { r.pick = pick }
}

// WithLogf replaces the fault logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(r *Responder) { r.logf = logf }
}

func NewResponder(opts ...Option) *Responder {
	r := &Responder{
		pick: rand.Intn,
		logf: log.Printf,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve answers a query from the user's state: custom triggers first,
// then the training matcher, then the fallback. It never panics and
// never returns an empty response; any internal fault degrades to the
// fallback result.
func (r *Responder) Resolve(query string, st *State) (resp ResolvedResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logf("assistant resolve fault: %v", rec)
			resp = r.fallback()
		}
	}()

	// 1) custom triggers win outright, regardless of training matches
	if reply, ok := matchCustom(query, st.CustomResponses); ok {
		return ResolvedResponse{
			Content:    reply,
			Confidence: customConfidence,
			Source:     SourceCustom,
		}
	}

	// 2) training match, re-gated above the matcher's own acceptance
	if ex, score, ok := bestTrainingMatch(query, st.Examples); ok && score > trainingGate {
		return ResolvedResponse{
			Content:         ex.Answer,
			Confidence:      score,
			Source:          SourceTraining,
			MatchedExamples: []TrainingExample{ex},
		}
	}

	// 3) last resort
	return r.fallback()
}
