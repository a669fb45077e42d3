// Package chat manages conversational sessions over completed resume
// assessments, with simulated token streaming on top of whole-reply model
// calls.
package chat

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-insight/internal/llm"
	"github.com/jonathan/resume-insight/internal/prompts"
	"github.com/jonathan/resume-insight/internal/scoring"
)

// DefaultChunkDelay is the pause between streamed chunks. Long enough that
// clients perceive progress, short enough not to dominate response time.
const DefaultChunkDelay = 20 * time.Millisecond

// apologyReply is returned verbatim when the model call fails. The failed
// turn leaves no trace in session history.
const apologyReply = "I apologize, but I encountered an error processing your question. " +
	"Please try rephrasing or ask something else about your resume analysis."

// Session is a single conversation pinned to the assessment it was created
// with. The snapshot never refreshes; later assessments under the same ID are
// ignored.
type Session struct {
	ID string

	mu       sync.Mutex
	history  []llm.Message
	context  string
	snapshot scoring.Assessment
}

// History returns a copy of the accumulated conversation turns.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot returns the assessment this session was created with.
func (s *Session) Snapshot() scoring.Assessment {
	return s.snapshot
}

// Store holds all live chat sessions in memory. Sessions persist for the
// lifetime of the process; there is no eviction.
type Store struct {
	client     llm.Client
	log        *zap.Logger
	chunkDelay time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates a session store backed by the given model client.
func NewStore(client llm.Client, log *zap.Logger, chunkDelay time.Duration) *Store {
	return &Store{
		client:     client,
		log:        log,
		chunkDelay: chunkDelay,
		sessions:   make(map[string]*Session),
	}
}

// GetOrCreate returns the session for sessionID, creating it with the given
// assessment if it does not exist. An existing session keeps its original
// snapshot; the assessment argument is ignored in that case.
func (s *Store) GetOrCreate(sessionID string, assessment scoring.Assessment) *Session {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}

	session = &Session{
		ID:       sessionID,
		history:  []llm.Message{},
		context:  renderContext(assessment),
		snapshot: assessment,
	}
	s.sessions[sessionID] = session
	s.log.Info("chat session created", zap.String("session_id", sessionID))
	return session
}

// Turn runs one conversation turn and returns the full reply. On model
// failure the apology reply is returned instead and the session history is
// left untouched, so the next turn starts from the last successful exchange.
func (s *Store) Turn(ctx context.Context, sessionID, message string, assessment scoring.Assessment) (string, error) {
	session := s.GetOrCreate(sessionID, assessment)

	session.mu.Lock()
	defer session.mu.Unlock()

	framed := prompts.Format(prompts.MustGet("chat.json", "framed-question"), map[string]string{
		"Context": session.context,
		"Message": message,
	})

	input := framed
	if len(session.history) == 0 {
		input = prompts.MustGet("chat.json", "consultant-persona") + "\n" + framed
	}

	reply, err := s.client.Converse(ctx, session.history, input)
	if err != nil {
		s.log.Warn("chat turn failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return apologyReply, nil
	}

	session.history = append(session.history,
		llm.Message{Role: llm.RoleUser, Text: input},
		llm.Message{Role: llm.RoleModel, Text: reply},
	)
	return reply, nil
}

// TurnStream runs one conversation turn and returns the reply as a channel of
// chunks. The channel is closed after the final chunk; closure is the only
// completion signal. The full reply is produced before the first chunk is
// sent, so streaming failures cannot occur mid-reply.
func (s *Store) TurnStream(ctx context.Context, sessionID, message string, assessment scoring.Assessment) (<-chan string, error) {
	reply, err := s.Turn(ctx, sessionID, message, assessment)
	if err != nil {
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for _, chunk := range chunkReply(reply) {
			select {
			case <-ctx.Done():
				return
			case out <- chunk:
			}
			if s.chunkDelay > 0 {
				time.Sleep(s.chunkDelay)
			}
		}
	}()
	return out, nil
}

// Clear removes a session. It reports whether a session existed.
func (s *Store) Clear(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	s.log.Info("chat session cleared", zap.String("session_id", sessionID))
	return true
}
