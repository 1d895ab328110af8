package assistant

import (
	"math"
	"testing"
)

func TestBestTrainingMatch_EmptyExamples(t *testing.T) {
	if _, _, ok := bestTrainingMatch("anything at all", nil); ok {
		t.Fatalf("expected no match on empty example log")
	}
}

func TestSimilarity_RawLengthDenominator(t *testing.T) {
	// "admission" and "deadline" survive the length filter and overlap;
	// the denominator stays the raw 5-word query length.
	examples := []TrainingExample{
		{Question: "admission deadline for btech", Answer: "April 30", Confidence: 0.9},
	}

	queryTokens := dropShortTokens([]string{"what", "is", "the", "admission", "deadline"})
	score := similarity(queryTokens, 5, []string{"admission", "deadline", "for", "btech"})
	if math.Abs(score-0.4) > 1e-9 {
		t.Fatalf("similarity = %v, want 0.4", score)
	}

	// 0.4 clears the candidate floor but not acceptance.
	if _, _, ok := bestTrainingMatch("what is the admission deadline", examples); ok {
		t.Fatalf("0.4 must not clear the acceptance threshold")
	}
}

func TestBestTrainingMatch_AcceptsAboveThreshold(t *testing.T) {
	examples := []TrainingExample{
		{Question: "admission deadline btech srm", Answer: "April 30", Confidence: 0.9},
	}

	// 3 shared filtered tokens over max(3, 4) raw words = 0.75.
	ex, score, ok := bestTrainingMatch("admission deadline btech", examples)
	if !ok {
		t.Fatalf("expected a match above the acceptance threshold")
	}
	if math.Abs(score-0.75) > 1e-9 {
		t.Fatalf("score = %v, want 0.75", score)
	}
	if ex.Answer != "April 30" {
		t.Fatalf("unexpected answer %q", ex.Answer)
	}
}

func TestBestTrainingMatch_PicksHighestScore(t *testing.T) {
	examples := []TrainingExample{
		{Question: "hostel fees per year", Answer: "80k"},
		{Question: "library opening hours today", Answer: "9am-9pm"},
		{Question: "library opening hours", Answer: "9am to 9pm"},
	}

	ex, _, ok := bestTrainingMatch("library opening hours", examples)
	if !ok {
		t.Fatalf("expected a match")
	}
	if ex.Answer != "9am to 9pm" {
		t.Fatalf("expected the exact-length question to win, got %q", ex.Answer)
	}
}

func TestSimilarity_QueryOccurrencesCountIndividually(t *testing.T) {
	// A repeated query token matching the same example token increments
	// the shared count once per query-side occurrence.
	score := similarity([]string{"deadline", "deadline"}, 2, []string{"deadline", "btech"})
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("score = %v, want 1.0", score)
	}
}

func TestDropShortTokens(t *testing.T) {
	got := dropShortTokens([]string{"is", "the", "admission", "a", "deadline"})
	want := []string{"the", "admission", "deadline"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
