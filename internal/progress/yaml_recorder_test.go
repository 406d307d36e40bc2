package progress

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLRecorder(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "progress")
	recorder := NewYAMLRecorder(dir)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	got, err := recorder.FindByLesson(ctx, "all")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, recorder.Record(ctx,
		Attempt{LessonID: "all", Headword: "casa", Answer: "house", Correct: true, AnsweredAt: at},
		Attempt{LessonID: "2", Headword: "dos", Answer: "to", AnsweredAt: at},
	))
	require.NoError(t, recorder.Record(ctx,
		Attempt{LessonID: "all", Headword: "perro", Answer: "cat", AnsweredAt: at.Add(time.Minute)},
	))
	require.NoError(t, recorder.Record(ctx))

	got, err = recorder.FindByLesson(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, []Attempt{
		{LessonID: "all", Headword: "casa", Answer: "house", Correct: true, AnsweredAt: at},
		{LessonID: "all", Headword: "perro", Answer: "cat", AnsweredAt: at.Add(time.Minute)},
	}, got)

	got, err = recorder.FindByLesson(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	content, err := os.ReadFile(filepath.Join(dir, "all.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "- lesson_id: all\n  headword: casa\n  answer: house\n  correct: true\n")
}

func TestYAMLRecorder_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all.yml"), []byte("[[["), 0644))
	recorder := NewYAMLRecorder(dir)

	_, err := recorder.FindByLesson(context.Background(), "all")
	assert.Error(t, err)

	err = recorder.Record(context.Background(), Attempt{LessonID: "all", Headword: "casa"})
	assert.Error(t, err)
}

func TestYAMLRecorder_ConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	recorder := NewYAMLRecorder(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, recorder.Record(ctx, Attempt{LessonID: "all", Headword: "casa", Correct: true}))
		}()
	}
	wg.Wait()

	got, err := recorder.FindByLesson(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestNopRecorder(t *testing.T) {
	var recorder Recorder = NopRecorder{}
	require.NoError(t, recorder.Record(context.Background(), Attempt{Headword: "casa"}))
	got, err := recorder.FindByLesson(context.Background(), "all")
	require.NoError(t, err)
	assert.Nil(t, got)
}
