// Package progress records drill answers and summarizes them.
package progress

import (
	"context"
	"time"
)

// Attempt is one answer given in a drill.
type Attempt struct {
	ID         int64     `db:"id" yaml:"-"`
	LessonID   string    `db:"lesson_id" yaml:"lesson_id"`
	Headword   string    `db:"headword" yaml:"headword"`
	Answer     string    `db:"answer" yaml:"answer"`
	Correct    bool      `db:"correct" yaml:"correct"`
	AnsweredAt time.Time `db:"answered_at" yaml:"answered_at"`
}

//go:generate mockgen -source=progress.go -destination=../mocks/progress/mock_recorder.go -package=mock_progress Recorder

// Recorder stores attempts.
type Recorder interface {
	Record(ctx context.Context, attempts ...Attempt) error
	FindByLesson(ctx context.Context, lessonID string) ([]Attempt, error)
}

// NopRecorder discards attempts.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, ...Attempt) error { return nil }

func (NopRecorder) FindByLesson(context.Context, string) ([]Attempt, error) { return nil, nil }
