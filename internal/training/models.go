package training

import "time"

// Example is one persisted question/answer pair. Rows are append-only;
// the repo evicts the oldest rows past the in-memory cap.
type Example struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"index;not null" json:"-"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	Confidence float64   `gorm:"not null" json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Example) TableName() string { return "ai_training_examples" }

type CustomResponse struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"-"`
	Trigger   string    `gorm:"type:varchar(255);not null" json:"trigger"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	Priority  int       `gorm:"not null" json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

func (CustomResponse) TableName() string { return "ai_custom_responses" }

// Profile holds the per-user scalar training state.
type Profile struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID        uint64     `gorm:"uniqueIndex;not null" json:"-"`
	Enabled       bool       `gorm:"not null;default:true" json:"enabled"`
	LearningRate  float64    `gorm:"not null" json:"learning_rate"`
	LastTrainedAt *time.Time `json:"last_trained_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Profile) TableName() string { return "ai_profiles" }

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is one asynchronous training run. A job that completes with
// insufficient data still succeeds; the structured outcome lands in the
// result columns.
type Job struct {
	ID string `gorm:"primaryKey;size:26"` // ULID length

	UserID uint64 `gorm:"not null;index:uniq_train_idempo,unique,priority:1"`

	IdempotencyKey *string `gorm:"type:varchar(128);index:uniq_train_idempo,unique,priority:2" json:"idempotency_key"`

	Status JobStatus `gorm:"type:varchar(16);index;not null"`

	// Filled when the run completed
	ResultSuccess     *bool    `json:"result_success"`
	ResultMessage     *string  `gorm:"type:text" json:"result_message"`
	TotalExamples     *int     `json:"total_examples"`
	AverageConfidence *float64 `json:"average_confidence"`
	NewPatterns       *int     `json:"new_patterns"`

	// Filled when the run itself failed (db faults and the like)
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Job) TableName() string { return "ai_train_jobs" }
