package training

import (
	"context"
	"errors"

	"github.com/rudra-raghu108/mist-backend/internal/assistant"
)

var (
	ErrEmptyQuestion = errors.New("question is required")
	ErrEmptyAnswer   = errors.New("answer is required")
	ErrEmptyTrigger  = errors.New("trigger is required")
	ErrEmptyResponse = errors.New("response is required")
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// LoadState hands out a fresh snapshot per call; concurrent resolves
// never share a mutable sequence.
func (s *Service) LoadState(ctx context.Context, userID uint64) (*assistant.State, error) {
	return s.repo.LoadState(ctx, userID)
}

func (s *Service) Profile(ctx context.Context, userID uint64) (*Profile, error) {
	return s.repo.EnsureProfile(ctx, userID)
}

func (s *Service) SetEnabled(ctx context.Context, userID uint64, enabled bool) error {
	return s.repo.SetEnabled(ctx, userID, enabled)
}

func (s *Service) AddExample(ctx context.Context, userID uint64, question, answer string, confidence float64) (*Example, error) {
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if answer == "" {
		return nil, ErrEmptyAnswer
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	ex := &Example{
		UserID:     userID,
		Question:   question,
		Answer:     answer,
		Confidence: confidence,
	}
	if err := s.repo.InsertExample(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *Service) AddCustomResponse(ctx context.Context, userID uint64, trigger, response string, priority int) (*CustomResponse, error) {
	if trigger == "" {
		return nil, ErrEmptyTrigger
	}
	if response == "" {
		return nil, ErrEmptyResponse
	}
	if priority < 1 {
		priority = 1
	}
	if priority > 10 {
		priority = 10
	}

	cr := &CustomResponse{
		UserID:   userID,
		Trigger:  trigger,
		Response: response,
		Priority: priority,
	}
	if err := s.repo.InsertCustomResponse(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *Service) ListCustomResponses(ctx context.Context, userID uint64) ([]CustomResponse, error) {
	return s.repo.ListCustomResponses(ctx, userID)
}

func (s *Service) CountExamples(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.CountExamples(ctx, userID)
}

// Train loads the user's snapshot, runs the trainer and persists the
// updated learning rate when the run produced one. The insufficient-data
// outcome is returned as-is; it is not an error.
func (s *Service) Train(ctx context.Context, userID uint64) (assistant.TrainingOutcome, error) {
	st, err := s.repo.LoadState(ctx, userID)
	if err != nil {
		return assistant.TrainingOutcome{}, err
	}

	outcome := assistant.Train(st)
	if outcome.Success {
		if err := s.repo.SaveTrainingResult(ctx, userID, st.LearningRate, st.LastTrainedAt); err != nil {
			return assistant.TrainingOutcome{}, err
		}
	}
	return outcome, nil
}

// Job orchestration

func (s *Service) CreateJobOrGetExisting(ctx context.Context, job *Job) (*Job, bool, error) {
	return s.repo.CreateJobOrGetExisting(ctx, job)
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetJobByID(ctx, jobID)
}

// RunJob executes one queued training job. Only infrastructure faults
// mark the job failed; a structured unsuccessful outcome still counts as
// a completed run.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	_ = s.repo.UpdateJobStatusRunning(ctx, jobID)

	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	outcome, err := s.Train(ctx, job.UserID)
	if err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}

	return s.repo.MarkJobSucceeded(ctx, jobID, outcome)
}
