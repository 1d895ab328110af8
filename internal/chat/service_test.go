package chat

import (
	"context"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/rudra-raghu108/mist-backend/internal/assistant"
)

type recordingResolver struct {
	lastQuery string
	lastState *assistant.State
	reply     assistant.ResolvedResponse
}

func (r *recordingResolver) Resolve(query string, st *assistant.State) assistant.ResolvedResponse {
	r.lastQuery = query
	r.lastState = st
	return r.reply
}

type staticStates struct {
	st *assistant.State
}

func (s *staticStates) LoadState(ctx context.Context, userID uint64) (*assistant.State, error) {
	_ = ctx
	_ = userID
	return s.st, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Session{}, &Message{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestSendMessage_WritesUserAndAssistant(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	res := &recordingResolver{
		reply: assistant.ResolvedResponse{
			Content:    "April 30",
			Confidence: 0.95,
			Source:     assistant.SourceCustom,
		},
	}
	svc := NewService(repo, &staticStates{st: assistant.NewState()}, res)

	sess, err := svc.CreateSession(context.Background(), 1, "admissions")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	resolved, assistantID, err := svc.SendMessage(context.Background(), 1, sess.SessionID, "deadline?")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if resolved.Content != "April 30" {
		t.Fatalf("unexpected reply: %q", resolved.Content)
	}
	if assistantID == 0 {
		t.Fatalf("expected assistant message id to be set")
	}
	if res.lastQuery != "deadline?" {
		t.Fatalf("resolver got query %q", res.lastQuery)
	}

	var msgs []Message
	if err := db.Where("session_id = ? AND user_id = ?", sess.SessionID, uint64(1)).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		t.Fatalf("query messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "deadline?" {
		t.Fatalf("unexpected user msg: role=%q content=%q", msgs[0].Role, msgs[0].Content)
	}
	if msgs[1].Role != "assistant" || msgs[1].Content != "April 30" {
		t.Fatalf("unexpected assistant msg: role=%q content=%q", msgs[1].Role, msgs[1].Content)
	}
	if msgs[1].Source != "custom" || msgs[1].Confidence != 0.95 {
		t.Fatalf("assistant msg metadata: source=%q confidence=%v", msgs[1].Source, msgs[1].Confidence)
	}
}

func TestSendMessage_DisabledStateResolvesBlank(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	st := assistant.NewState()
	st.Enabled = false
	st.AddCustomResponse(assistant.CustomResponse{Trigger: "fees", Response: "canned", Priority: 5})

	res := &recordingResolver{reply: assistant.ResolvedResponse{Content: "x", Confidence: 0.3, Source: assistant.SourceFallback}}
	svc := NewService(repo, &staticStates{st: st}, res)

	sess, err := svc.CreateSession(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, _, err := svc.SendMessage(context.Background(), 7, sess.SessionID, "fees"); err != nil {
		t.Fatalf("send message: %v", err)
	}

	if len(res.lastState.CustomResponses) != 0 {
		t.Fatalf("disabled profile must not expose custom responses to the resolver")
	}
}

func TestSendMessage_WrongOwnerHidesSession(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	svc := NewService(repo, &staticStates{st: assistant.NewState()}, &recordingResolver{})

	sess, err := svc.CreateSession(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, _, err := svc.SendMessage(context.Background(), 2, sess.SessionID, "hi"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record-not-found for foreign session, got %v", err)
	}
}
