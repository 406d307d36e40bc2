// Package drill keeps per-session drill state and implements the drill
// operations on top of the lesson catalog.
package drill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the state of one learner's drill.
type Session struct {
	ID          string    `json:"id"`
	LessonID    string    `json:"lesson_id"`
	CurrentWord string    `json:"current_word,omitempty"`
	HelpShown   bool      `json:"help_shown"`
	Answered    int       `json:"answered"`
	Correct     int       `json:"correct"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSession returns a session with a random id drilling lessonID.
func NewSession(lessonID string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		LessonID: lessonID,
	}
}

//go:generate mockgen -source=session.go -destination=../mocks/drill/mock_store.go -package=mock_drill Store

// Store persists sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
}
