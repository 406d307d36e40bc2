// Package testutil provides shared test helpers for creating config files and lesson fixtures.
package testutil

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Word is one dictionary record of a fixture.
type Word struct {
	Headword   string `yaml:"headword"`
	Gloss      string `yaml:"gloss"`
	Definition string `yaml:"definition,omitempty"`
}

// DefaultWords is the content of the dictionary written by SetupTestConfig.
var DefaultWords = []Word{
	{Headword: "casa", Gloss: "house, home", Definition: "{f} /ˈkasa/ (building for living)"},
	{Headword: "correr", Gloss: "to run (move quickly), to jog", Definition: "/koˈreɾ/"},
	{Headword: "árbol", Gloss: "tree {m}"},
}

// ConfigOption configures optional sections of the generated config file.
type ConfigOption func(*configFile)

type configFile struct {
	words []Word
	extra []string
}

// WithWords replaces DefaultWords in the main dictionary.
func WithWords(words ...Word) ConfigOption {
	return func(cfg *configFile) {
		cfg.words = words
	}
}

// WithYAML appends raw YAML to the generated config file.
func WithYAML(content string) ConfigOption {
	return func(cfg *configFile) {
		cfg.extra = append(cfg.extra, content)
	}
}

// SetupTestConfig creates a config file, a main dictionary and all required
// directories under tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := configFile{words: DefaultWords}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, d := range []string{"lessons", "progress", "outputs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}
	dictionaryPath := filepath.Join(tmpDir, "dict_es_en.xml")
	WriteXMLLesson(t, dictionaryPath, cfg.words...)

	configContent := fmt.Sprintf(`lessons:
  dictionary_file: %s
  directory: %s
  export_directory: %s
progress:
  backend: yaml
  directory: %s
`,
		dictionaryPath,
		filepath.Join(tmpDir, "lessons"),
		filepath.Join(tmpDir, "outputs"),
		filepath.Join(tmpDir, "progress"),
	)
	configContent += strings.Join(cfg.extra, "")

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

type xmlDictionary struct {
	XMLName xml.Name  `xml:"dic"`
	Words   []xmlWord `xml:"l>w"`
}

type xmlWord struct {
	Headword   string `xml:"c"`
	Gloss      string `xml:"d,omitempty"`
	Definition string `xml:"t,omitempty"`
}

// WriteXMLLesson writes words in the dictionary XML format:
// <dic><l><w><c>headword</c><d>gloss</d><t>definition</t></w></l></dic>.
func WriteXMLLesson(t *testing.T, path string, words ...Word) {
	t.Helper()

	doc := xmlDictionary{}
	for _, w := range words {
		doc.Words = append(doc.Words, xmlWord(w))
	}
	content, err := xml.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, append([]byte(xml.Header), content...), 0644))
}

// WriteYAMLLesson writes words in the YAML lesson format.
func WriteYAMLLesson(t *testing.T, path, title string, words ...Word) {
	t.Helper()

	content, err := yaml.Marshal(struct {
		Title string `yaml:"title,omitempty"`
		Words []Word `yaml:"words"`
	}{Title: title, Words: words})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
}
