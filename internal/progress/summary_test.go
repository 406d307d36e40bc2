package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func attempt(headword string, correct bool, at time.Time) Attempt {
	return Attempt{LessonID: "all", Headword: headword, Correct: correct, AnsweredAt: at}
}

func TestSummarize(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		attempts []Attempt
		want     Summary
	}{
		{
			name: "no attempts",
			want: Summary{},
		},
		{
			name: "weakest words ordered by misses",
			attempts: []Attempt{
				attempt("casa", true, jan),
				attempt("perro", false, jan),
				attempt("perro", false, jan),
				attempt("gato", false, jan),
				attempt("gato", true, jan),
				attempt("árbol", false, jan),
			},
			want: Summary{
				Total:     6,
				Correct:   2,
				Incorrect: 4,
				Accuracy:  2.0 / 6.0,
				Words:     4,
				Weakest: []WordStats{
					{Headword: "perro", Incorrect: 2},
					{Headword: "árbol", Incorrect: 1},
					{Headword: "gato", Correct: 1, Incorrect: 1},
				},
			},
		},
		{
			name: "all correct",
			attempts: []Attempt{
				attempt("casa", true, jan),
				attempt("casa", true, jan),
			},
			want: Summary{Total: 2, Correct: 2, Accuracy: 1, Words: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.attempts))
		})
	}
}

func TestSummarize_WeakestIsLimited(t *testing.T) {
	var attempts []Attempt
	for _, w := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		attempts = append(attempts, attempt(w, false, time.Time{}))
	}

	got := Summarize(attempts)
	assert.Len(t, got.Weakest, 10)
	assert.Equal(t, "a", got.Weakest[0].Headword)
	assert.Equal(t, 12, got.Words)
}

func TestMonthly(t *testing.T) {
	attempts := []Attempt{
		attempt("casa", true, time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)),
		attempt("casa", false, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)),
		attempt("casa", true, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)),
		attempt("perro", true, time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)),
		attempt("gato", true, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
		attempt("sin fecha", true, time.Time{}),
	}

	tests := []struct {
		name  string
		year  int
		month int
		want  []PeriodStats
	}{
		{
			name: "no filter",
			want: []PeriodStats{
				{Period: "2025-02", Attempts: 1, Correct: 1, UniqueWords: 1},
				{Period: "2025-01", Attempts: 3, Correct: 2, UniqueWords: 2},
				{Period: "2024-12", Attempts: 1, Correct: 1, UniqueWords: 1},
			},
		},
		{
			name: "year filter",
			year: 2024,
			want: []PeriodStats{
				{Period: "2024-12", Attempts: 1, Correct: 1, UniqueWords: 1},
			},
		},
		{
			name:  "month filter",
			year:  2025,
			month: 1,
			want: []PeriodStats{
				{Period: "2025-01", Attempts: 3, Correct: 2, UniqueWords: 2},
			},
		},
		{
			name: "no match",
			year: 2023,
			want: []PeriodStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Monthly(attempts, tt.year, tt.month))
		})
	}
}
