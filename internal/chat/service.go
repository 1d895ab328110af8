package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rudra-raghu108/mist-backend/internal/assistant"
)

// Resolver produces the assistant reply for a query over a user's
// training-state snapshot. Implemented by assistant.Responder.
type Resolver interface {
	Resolve(query string, st *assistant.State) assistant.ResolvedResponse
}

// StateLoader hands out per-call snapshots of a user's training state.
// Implemented by the training service.
type StateLoader interface {
	LoadState(ctx context.Context, userID uint64) (*assistant.State, error)
}

type Service struct {
	repo     *Repo
	states   StateLoader
	resolver Resolver
}

func NewService(repo *Repo, states StateLoader, resolver Resolver) *Service {
	return &Service{repo: repo, states: states, resolver: resolver}
}

func (s *Service) CreateSession(ctx context.Context, userID uint64, title string) (*Session, error) {
	sid, err := NewSessionID()
	if err != nil {
		return nil, err
	}

	session := &Session{
		SessionID: sid,
		UserID:    userID,
		Title:     title,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) ListSessions(ctx context.Context, userID uint64) ([]Session, error) {
	return s.repo.ListSessions(ctx, userID)
}

// SendMessage stores the user message, resolves a reply from the user's
// training state and stores the assistant message with its source and
// confidence. The resolver never fails, so once the user message is in,
// the only remaining failure modes are storage errors.
func (s *Service) SendMessage(ctx context.Context, userID uint64, sessionID string, content string) (assistant.ResolvedResponse, uint64, error) {
	// 1) verify session ownership
	session, err := s.repo.GetSessionBySessionID(ctx, sessionID)
	if err != nil {
		return assistant.ResolvedResponse{}, 0, err
	}
	if session.UserID != userID {
		return assistant.ResolvedResponse{}, 0, gorm.ErrRecordNotFound
	}

	// 2) store user message (strong consistency)
	userMsg := &Message{
		SessionID: sessionID,
		UserID:    userID,
		Role:      "user",
		Content:   content,
	}
	if err := s.repo.InsertMessage(ctx, userMsg); err != nil {
		return assistant.ResolvedResponse{}, 0, err
	}

	// 3) snapshot the user's training state
	st, err := s.states.LoadState(ctx, userID)
	if err != nil {
		return assistant.ResolvedResponse{}, 0, err
	}
	if !st.Enabled {
		// personalisation off: resolve against a blank state so only the
		// fallback path can answer
		st = assistant.NewState()
	}

	// 4) resolve
	resolved := s.resolver.Resolve(content, st)

	// 5) store assistant message
	assistantMsg := &Message{
		SessionID:  sessionID,
		UserID:     userID,
		Role:       "assistant",
		Content:    resolved.Content,
		Source:     string(resolved.Source),
		Confidence: resolved.Confidence,
	}
	if err := s.repo.InsertMessage(ctx, assistantMsg); err != nil {
		return assistant.ResolvedResponse{}, 0, err
	}

	return resolved, assistantMsg.ID, nil
}

func (s *Service) ListMessages(ctx context.Context, userID uint64, sessionID string, limit int, beforeID uint64) ([]Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if err := s.ValidateSessionOwner(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, userID, sessionID, limit, beforeID)
}

func (s *Service) ValidateSessionOwner(ctx context.Context, userID uint64, sessionID string) error {
	sess, err := s.repo.GetSessionBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	if sess.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	return nil
}
