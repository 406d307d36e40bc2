package assets

import (
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"io"
)

//go:embed templates/index.html.tmpl
var fallbackIndexTemplate string

// IndexPage is the data passed to the drill page template.
type IndexPage struct {
	Word     string
	LessonID string
	Lessons  []IndexLesson
}

type IndexLesson struct {
	ID   string
	Name string
}

// IndexTemplate renders the drill page.
type IndexTemplate struct {
	tmpl *htmltemplate.Template
}

// ParseIndexTemplate parses templatePath, or the embedded page when the path
// is empty or cannot be parsed.
func ParseIndexTemplate(templatePath string) (*IndexTemplate, error) {
	tmpl, err := parseHTMLTemplateWithFallback(templatePath, "index.html.tmpl", fallbackIndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parseHTMLTemplateWithFallback() > %w", err)
	}
	return &IndexTemplate{tmpl: tmpl}, nil
}

func (t *IndexTemplate) Execute(output io.Writer, page IndexPage) error {
	if err := t.tmpl.Execute(output, page); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
