package progress

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/palabra/internal/database"
)

var attemptColumns = []string{"lesson_id", "headword", "answer", "correct", "answered_at"}

// DBRecorder stores attempts in the drill_attempts table.
type DBRecorder struct {
	db *sqlx.DB
}

func NewDBRecorder(db *sqlx.DB) *DBRecorder {
	return &DBRecorder{db: db}
}

// Record inserts all attempts in one statement inside a transaction.
func (r *DBRecorder) Record(ctx context.Context, attempts ...Attempt) error {
	if len(attempts) == 0 {
		return nil
	}

	query := database.BuildMultiRowInsert("drill_attempts", attemptColumns, len(attempts))
	args := make([]any, 0, len(attempts)*len(attemptColumns))
	for _, a := range attempts {
		args = append(args, a.LessonID, a.Headword, a.Answer, a.Correct, a.AnsweredAt)
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("tx.ExecContext(insert drill_attempts) > %w", err)
		}
		return nil
	})
}

func (r *DBRecorder) FindByLesson(ctx context.Context, lessonID string) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		"SELECT id, lesson_id, headword, answer, correct, answered_at FROM drill_attempts WHERE lesson_id = ? ORDER BY answered_at, id",
		lessonID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(drill_attempts by lesson) > %w", err)
	}
	return attempts, nil
}
