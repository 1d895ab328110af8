package training

import (
	"context"
	"fmt"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/rudra-raghu108/mist-backend/internal/assistant"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Example{}, &CustomResponse{}, &Profile{}, &Job{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepo(openTestDB(t)))
}

func TestLoadState_DefaultsOnFirstTouch(t *testing.T) {
	svc := newTestService(t)

	st, err := svc.LoadState(context.Background(), 1)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if !st.Enabled {
		t.Fatalf("new profile should be enabled")
	}
	if st.LearningRate != 0.01 {
		t.Fatalf("learning rate = %v, want default 0.01", st.LearningRate)
	}
	if len(st.Examples) != 0 || len(st.CustomResponses) != 0 {
		t.Fatalf("new state should be empty")
	}
}

func TestLoadState_ResponsesPriorityOrdered(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, cr := range []struct {
		trigger  string
		priority int
	}{
		{"hostel", 3},
		{"fees", 9},
		{"exam", 9},
		{"library", 1},
	} {
		if _, err := svc.AddCustomResponse(ctx, 1, cr.trigger, "r", cr.priority); err != nil {
			t.Fatalf("add response %q: %v", cr.trigger, err)
		}
	}

	st, err := svc.LoadState(ctx, 1)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}

	var got []string
	for _, cr := range st.CustomResponses {
		got = append(got, cr.Trigger)
	}
	want := []string{"fees", "exam", "hostel", "library"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAddExample_ClampsConfidenceAndEvicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ex, err := svc.AddExample(ctx, 1, "q", "a", 1.7)
	if err != nil {
		t.Fatalf("add example: %v", err)
	}
	if ex.Confidence != 1 {
		t.Fatalf("confidence = %v, want clamped to 1", ex.Confidence)
	}

	for i := 0; i < assistant.MaxExamples+5; i++ {
		if _, err := svc.AddExample(ctx, 1, fmt.Sprintf("q%d", i), "a", 0.5); err != nil {
			t.Fatalf("add example %d: %v", i, err)
		}
	}

	n, err := svc.repo.CountExamples(ctx, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != assistant.MaxExamples {
		t.Fatalf("stored examples = %d, want %d", n, assistant.MaxExamples)
	}

	st, err := svc.LoadState(ctx, 1)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if st.Examples[0].Question != "q5" {
		t.Fatalf("oldest surviving question = %q, want q5", st.Examples[0].Question)
	}
}

func TestAddExample_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddExample(ctx, 1, "", "a", 0.5); err != ErrEmptyQuestion {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
	if _, err := svc.AddExample(ctx, 1, "q", "", 0.5); err != ErrEmptyAnswer {
		t.Fatalf("err = %v, want ErrEmptyAnswer", err)
	}
}

func TestTrain_PersistsLearningRate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := svc.AddExample(ctx, 1, fmt.Sprintf("question %d", i), "a", 0.9); err != nil {
			t.Fatalf("add example: %v", err)
		}
	}

	outcome, err := svc.Train(ctx, 1)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("train outcome: %s", outcome.Message)
	}
	if outcome.Stats.TotalExamples != 12 || outcome.Stats.NewPatterns != 1 {
		t.Fatalf("stats = %+v", outcome.Stats)
	}

	p, err := svc.Profile(ctx, 1)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.LearningRate != 0.005 {
		t.Fatalf("persisted learning rate = %v, want 0.005", p.LearningRate)
	}
	if p.LastTrainedAt == nil {
		t.Fatalf("last trained timestamp not persisted")
	}
}

func TestTrain_InsufficientLeavesProfileAlone(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddExample(ctx, 1, "one question", "a", 0.9); err != nil {
		t.Fatalf("add example: %v", err)
	}

	outcome, err := svc.Train(ctx, 1)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if outcome.Success {
		t.Fatalf("expected structured failure below the minimum")
	}

	p, err := svc.Profile(ctx, 1)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.LearningRate != 0.01 {
		t.Fatalf("learning rate changed: %v", p.LearningRate)
	}
	if p.LastTrainedAt != nil {
		t.Fatalf("last trained set on failed run")
	}
}

func TestRunJob_MarksSucceededEvenWhenInsufficient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	job := &Job{ID: "01TESTTRAINJOB000000000000", UserID: 1, Status: JobQueued}
	created, isNew, err := svc.CreateJobOrGetExisting(ctx, job)
	if err != nil || !isNew {
		t.Fatalf("create job: new=%v err=%v", isNew, err)
	}

	if err := svc.RunJob(ctx, created.ID); err != nil {
		t.Fatalf("run job: %v", err)
	}

	got, err := svc.GetJob(ctx, created.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != JobSucceeded {
		t.Fatalf("status = %q, want succeeded", got.Status)
	}
	if got.ResultSuccess == nil || *got.ResultSuccess {
		t.Fatalf("structured outcome should report success=false, got %+v", got.ResultSuccess)
	}
	if got.TotalExamples == nil || *got.TotalExamples != 0 {
		t.Fatalf("total examples = %+v, want 0", got.TotalExamples)
	}
}

func TestCreateJobOrGetExisting_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	key := "retry-key"
	first := &Job{ID: "01TESTTRAINJOB000000000001", UserID: 1, Status: JobQueued, IdempotencyKey: &key}
	if _, isNew, err := svc.CreateJobOrGetExisting(ctx, first); err != nil || !isNew {
		t.Fatalf("first create: new=%v err=%v", isNew, err)
	}

	dup := &Job{ID: "01TESTTRAINJOB000000000002", UserID: 1, Status: JobQueued, IdempotencyKey: &key}
	got, isNew, err := svc.CreateJobOrGetExisting(ctx, dup)
	if err != nil {
		t.Fatalf("duplicate create: %v", err)
	}
	if isNew {
		t.Fatalf("duplicate key must return the existing job")
	}
	if got.ID != first.ID {
		t.Fatalf("got job %q, want %q", got.ID, first.ID)
	}
}
