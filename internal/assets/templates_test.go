package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLesson(t *testing.T) {
	data := LessonTemplate{
		ID:    "1",
		Title: "Lesson 1",
		Words: []LessonWord{
			{Headword: "casa", Gloss: "house, home", Definition: "{f} /ˈkasa/", Answers: []string{"house", "home"}},
			{Headword: "correr", Gloss: "to run", Answers: []string{"to run", "run"}},
		},
	}

	tests := []struct {
		name         string
		templatePath func(t *testing.T) string
		showAnswers  bool
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "embedded template",
			templatePath: func(t *testing.T) string { return "" },
			wantContains: []string{
				"# Lesson 1",
				"2 words",
				"| casa | house, home | {f} /ˈkasa/ |",
				"| correr | to run |  |",
			},
			wantMissing: []string{"Accepted answers"},
		},
		{
			name:         "embedded template with answers",
			templatePath: func(t *testing.T) string { return "" },
			showAnswers:  true,
			wantContains: []string{
				"## Accepted answers",
				"- **casa**: house, home",
				"- **correr**: to run, run",
			},
		},
		{
			name: "filesystem template",
			templatePath: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				require.NoError(t, os.WriteFile(path, []byte(`{{ .ID }}:{{ range .Words }} {{ .Headword }}{{ end }}`), 0644))
				return path
			},
			wantContains: []string{"1: casa correr"},
		},
		{
			name: "broken filesystem template falls back to embedded",
			templatePath: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
				require.NoError(t, os.WriteFile(path, []byte(`{{ range .Words }`), 0644))
				return path
			},
			wantContains: []string{"# Lesson 1"},
		},
		{
			name:         "missing filesystem template falls back to embedded",
			templatePath: func(t *testing.T) string { return "/non/existent/lesson.md.go.tmpl" },
			wantContains: []string{"# Lesson 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := data
			input.ShowAnswers = tt.showAnswers

			var buf bytes.Buffer
			require.NoError(t, WriteLesson(&buf, tt.templatePath(t), input))

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, buf.String(), missing)
			}
		})
	}
}

func TestIndexTemplate_Execute(t *testing.T) {
	tmpl, err := ParseIndexTemplate("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, IndexPage{
		Word:     "<casa>",
		LessonID: "2",
		Lessons: []IndexLesson{
			{ID: "all", Name: "All words"},
			{ID: "2", Name: "Lesson 2"},
		},
	}))

	html := buf.String()
	assert.Contains(t, html, `<h1 id="word">&lt;casa&gt;</h1>`)
	assert.Contains(t, html, `<option value="2" selected>Lesson 2</option>`)
	assert.Contains(t, html, `<option value="all">All words</option>`)
}

func TestParseIndexTemplate_Filesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<p>{{ .Word }}</p>`), 0644))

	tmpl, err := ParseIndexTemplate(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, IndexPage{Word: "perro"}))
	assert.Equal(t, "<p>perro</p>", buf.String())
}
