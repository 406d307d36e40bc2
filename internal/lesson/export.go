package lesson

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/palabra/internal/assets"
	"github.com/at-ishikawa/palabra/internal/glossary"
)

// ExportOptions controls how a lesson is rendered.
type ExportOptions struct {
	// TemplatePath overrides the embedded Markdown template when set.
	TemplatePath string
	ShowAnswers  bool
}

// Export renders the words of a lesson as Markdown in headword order.
func Export(w io.Writer, l Lesson, dict *glossary.Dictionary, opts ExportOptions) error {
	data := assets.LessonTemplate{
		ID:          l.ID,
		Title:       l.Name,
		ShowAnswers: opts.ShowAnswers,
	}
	for _, headword := range dict.Headwords() {
		entry, _ := dict.Lookup(headword)
		data.Words = append(data.Words, assets.LessonWord{
			Headword:   entry.Headword,
			Gloss:      entry.OriginalGloss,
			Definition: entry.Definition,
			Answers:    entry.Answers,
		})
	}
	if err := assets.WriteLesson(w, opts.TemplatePath, data); err != nil {
		return fmt.Errorf("assets.WriteLesson() > %w", err)
	}
	return nil
}

// ExportFile writes the lesson to dir/<id>.md and returns the path.
func ExportFile(dir string, l Lesson, dict *glossary.Dictionary, opts ExportOptions) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	path := filepath.Join(dir, l.ID+".md")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := Export(file, l, dict, opts); err != nil {
		return "", err
	}
	return path, nil
}
