package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBRecorder_Record(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	insert := "INSERT INTO drill_attempts \\(lesson_id, headword, answer, correct, answered_at\\) VALUES \\(\\?, \\?, \\?, \\?, \\?\\), \\(\\?, \\?, \\?, \\?, \\?\\)"

	tests := []struct {
		name      string
		attempts  []Attempt
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "inserts all attempts in one statement",
			attempts: []Attempt{
				{LessonID: "all", Headword: "casa", Answer: "house", Correct: true, AnsweredAt: at},
				{LessonID: "all", Headword: "perro", Answer: "cat", AnsweredAt: at},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insert).
					WithArgs("all", "casa", "house", true, at, "all", "perro", "cat", false, at).
					WillReturnResult(sqlmock.NewResult(1, 2))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			attempts: []Attempt{
				{LessonID: "all", Headword: "casa", AnsweredAt: at},
				{LessonID: "all", Headword: "perro", AnsweredAt: at},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insert).WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name:      "no attempts",
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			recorder := NewDBRecorder(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			err = recorder.Record(context.Background(), tt.attempts...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRecorder_FindByLesson(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query := "SELECT id, lesson_id, headword, answer, correct, answered_at FROM drill_attempts WHERE lesson_id = \\? ORDER BY answered_at, id"

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      []Attempt
		wantErr   bool
	}{
		{
			name: "returns attempts for lesson",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "lesson_id", "headword", "answer", "correct", "answered_at"}).
					AddRow(1, "2", "dos", "two", true, at).
					AddRow(2, "2", "tres", "four", false, at)
				mock.ExpectQuery(query).WithArgs("2").WillReturnRows(rows)
			},
			want: []Attempt{
				{ID: 1, LessonID: "2", Headword: "dos", Answer: "two", Correct: true, AnsweredAt: at},
				{ID: 2, LessonID: "2", Headword: "tres", Answer: "four", AnsweredAt: at},
			},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("2").WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			recorder := NewDBRecorder(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := recorder.FindByLesson(context.Background(), "2")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
