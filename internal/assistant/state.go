package assistant

import "time"

// MaxExamples caps the per-user training log. Oldest entries are
// evicted first once the cap is reached.
const MaxExamples = 1000

const (
	MinLearningRate = 0.001
	MaxLearningRate = 0.1

	defaultLearningRate = 0.01
)

// TrainingExample is one recorded question/answer pair. Examples are
// append-only: they are never edited after being recorded.
type TrainingExample struct {
	Question   string
	Answer     string
	Confidence float64
	RecordedAt time.Time
}

// CustomResponse maps a user-authored trigger substring to a canned reply.
// Priority runs 1..10; higher wins when several triggers match a query.
type CustomResponse struct {
	Trigger  string
	Response string
	Priority int
}

// State is one user's AI training state: the example log, the custom
// responses and the adaptive learning rate. CustomResponses is kept
// sorted by priority descending at all times (stable on ties), so the
// matcher can take the first hit without scoring.
type State struct {
	Enabled         bool
	Examples        []TrainingExample
	CustomResponses []CustomResponse
	LearningRate    float64
	LastTrainedAt   time.Time
}

func NewState() *State {
	return &State{
		Enabled:      true,
		LearningRate: defaultLearningRate,
	}
}

// AddExample appends an example, evicting the oldest entries to stay
// within MaxExamples.
func (s *State) AddExample(ex TrainingExample) {
	s.Examples = append(s.Examples, ex)
	if n := len(s.Examples); n > MaxExamples {
		s.Examples = s.Examples[n-MaxExamples:]
	}
}

// AddCustomResponse inserts a response keeping the collection sorted by
// priority descending. Equal priorities keep insertion order, so the
// insert point is after the last entry with priority >= the new one.
func (s *State) AddCustomResponse(cr CustomResponse) {
	i := len(s.CustomResponses)
	for i > 0 && s.CustomResponses[i-1].Priority < cr.Priority {
		i--
	}
	s.CustomResponses = append(s.CustomResponses, CustomResponse{})
	copy(s.CustomResponses[i+1:], s.CustomResponses[i:])
	s.CustomResponses[i] = cr
}
