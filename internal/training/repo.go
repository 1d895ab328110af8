package training

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rudra-raghu108/mist-backend/internal/assistant"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// EnsureProfile returns the user's profile, creating it with defaults on
// first touch.
func (r *Repo) EnsureProfile(ctx context.Context, userID uint64) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Where(Profile{UserID: userID}).
		Attrs(Profile{Enabled: true, LearningRate: 0.01}).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SetEnabled(ctx context.Context, userID uint64, enabled bool) error {
	if _, err := r.EnsureProfile(ctx, userID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&Profile{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}

// SaveTrainingResult persists the trainer's in-place mutations.
func (r *Repo) SaveTrainingResult(ctx context.Context, userID uint64, learningRate float64, trainedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"learning_rate":   learningRate,
			"last_trained_at": trainedAt,
		}).Error
}

func (r *Repo) InsertExample(ctx context.Context, ex *Example) error {
	if err := r.db.WithContext(ctx).Create(ex).Error; err != nil {
		return err
	}
	return r.evictOverflow(ctx, ex.UserID)
}

// evictOverflow drops the oldest rows above the example cap. Oldest id
// first, matching the in-memory eviction order.
func (r *Repo) evictOverflow(ctx context.Context, userID uint64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Example{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	overflow := int(count) - assistant.MaxExamples
	if overflow <= 0 {
		return nil
	}

	var ids []uint64
	if err := r.db.WithContext(ctx).Model(&Example{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Limit(overflow).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&Example{}, ids).Error
}

func (r *Repo) InsertCustomResponse(ctx context.Context, cr *CustomResponse) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

// LoadState builds the in-memory snapshot the assistant core works on:
// newest MaxExamples examples in insertion order, custom responses in
// priority-descending order with ties on insertion order.
func (r *Repo) LoadState(ctx context.Context, userID uint64) (*assistant.State, error) {
	profile, err := r.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rows []Example
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(assistant.MaxExamples).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var responses []CustomResponse
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC, id ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	st := &assistant.State{
		Enabled:      profile.Enabled,
		LearningRate: profile.LearningRate,
	}
	if profile.LastTrainedAt != nil {
		st.LastTrainedAt = *profile.LastTrainedAt
	}

	// rows came newest-first; reverse to insertion order
	st.Examples = make([]assistant.TrainingExample, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		st.Examples = append(st.Examples, assistant.TrainingExample{
			Question:   row.Question,
			Answer:     row.Answer,
			Confidence: row.Confidence,
			RecordedAt: row.CreatedAt,
		})
	}

	st.CustomResponses = make([]assistant.CustomResponse, 0, len(responses))
	for _, cr := range responses {
		st.CustomResponses = append(st.CustomResponses, assistant.CustomResponse{
			Trigger:  cr.Trigger,
			Response: cr.Response,
			Priority: cr.Priority,
		})
	}

	return st, nil
}

func (r *Repo) ListCustomResponses(ctx context.Context, userID uint64) ([]CustomResponse, error) {
	var responses []CustomResponse
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC, id ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *Repo) CountExamples(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Example{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// Job CRUD

func (r *Repo) CreateJob(ctx context.Context, job *Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) UpdateJobStatusRunning(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning).Error
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id string, outcome assistant.TrainingOutcome) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":             JobSucceeded,
			"result_success":     outcome.Success,
			"result_message":     outcome.Message,
			"total_examples":     outcome.Stats.TotalExamples,
			"average_confidence": outcome.Stats.AverageConfidence,
			"new_patterns":       outcome.Stats.NewPatterns,
			"error":              nil,
		}).Error
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobFailed,
			"error":  errMsg,
		}).Error
}

func (r *Repo) GetJobByUserAndIdempotencyKey(ctx context.Context, userID uint64, key string) (*Job, error) {
	var job Job
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJobOrGetExisting tries to create a job, but if (user_id,
// idempotency_key) already exists it returns the existing job instead.
func (r *Repo) CreateJobOrGetExisting(ctx context.Context, job *Job) (*Job, bool, error) {
	if job.IdempotencyKey == nil || *job.IdempotencyKey == "" {
		job.IdempotencyKey = nil
		if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
			return nil, false, err
		}
		return job, true, nil
	}

	err := r.db.WithContext(ctx).Create(job).Error
	if err == nil {
		return job, true, nil
	}

	existing, getErr := r.GetJobByUserAndIdempotencyKey(ctx, job.UserID, *job.IdempotencyKey)
	if getErr == nil {
		return existing, false, nil
	}

	if errors.Is(getErr, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	return nil, false, getErr
}
