package assets

import (
	_ "embed"
	"fmt"
	"io"
)

//go:embed templates/lesson.md.go.tmpl
var fallbackLessonTemplate string

// LessonTemplate is the data passed to the lesson export template.
type LessonTemplate struct {
	ID          string
	Title       string
	ShowAnswers bool
	Words       []LessonWord
}

type LessonWord struct {
	Headword   string
	Gloss      string
	Definition string
	Answers    []string
}

// WriteLesson renders a lesson word list as Markdown.
func WriteLesson(output io.Writer, templatePath string, data LessonTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, "lesson.md.go.tmpl", fallbackLessonTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
