// Package lesson reads vocabulary sources and keeps the catalog of lessons a
// drill session can choose from.
package lesson

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/palabra/internal/glossary"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported lesson format")
	ErrNoRootElement     = errors.New("no root element")
)

// Source is the raw content of one lesson file.
type Source struct {
	Title string
	// Records counts every word record in the file, including ones skipped
	// for a missing headword.
	Records int
	Triples []glossary.Triple
}

// xmlWord is one <w> element: <c> holds the headword, <d> the gloss and
// <t> the definition.
type xmlWord struct {
	Headword   *string `xml:"c"`
	Gloss      string  `xml:"d"`
	Definition string  `xml:"t"`
}

type yamlLesson struct {
	Title string     `yaml:"title,omitempty"`
	Words []yamlWord `yaml:"words"`
}

type yamlWord struct {
	Headword   string `yaml:"headword"`
	Gloss      string `yaml:"gloss"`
	Definition string `yaml:"definition,omitempty"`
}

// ReadFile reads a lesson file, choosing the format from its extension.
func ReadFile(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	src, err := Read(file, filepath.Ext(path))
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", path, err)
	}
	return src, nil
}

// Read parses a lesson in the format named by ext (".xml", ".yml", ".yaml").
func Read(r io.Reader, ext string) (Source, error) {
	switch strings.ToLower(ext) {
	case ".xml":
		return ReadXML(r)
	case ".yml", ".yaml":
		return ReadYAML(r)
	default:
		return Source{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadXML collects every <w> element of the document, at any depth.
func ReadXML(r io.Reader) (Source, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		src     Source
		hasRoot bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Source{}, fmt.Errorf("decoder.Token() > %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		hasRoot = true
		if start.Name.Local != "w" {
			continue
		}

		var word xmlWord
		if err := decoder.DecodeElement(&word, &start); err != nil {
			return Source{}, fmt.Errorf("decoder.DecodeElement() > %w", err)
		}
		src.Records++
		if word.Headword == nil || strings.TrimSpace(*word.Headword) == "" {
			continue
		}
		src.Triples = append(src.Triples, glossary.Triple{
			Headword:   strings.TrimSpace(*word.Headword),
			Gloss:      word.Gloss,
			Definition: word.Definition,
		})
	}
	if !hasRoot {
		return Source{}, ErrNoRootElement
	}
	return src, nil
}

// ReadYAML parses the YAML lesson format:
//
//	title: Lesson 1
//	words:
//	  - headword: casa
//	    gloss: house, home
func ReadYAML(r io.Reader) (Source, error) {
	var lesson yamlLesson
	if err := yaml.NewDecoder(r).Decode(&lesson); err != nil {
		if err == io.EOF {
			return Source{}, nil
		}
		return Source{}, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}

	src := Source{
		Title:   lesson.Title,
		Records: len(lesson.Words),
	}
	for _, word := range lesson.Words {
		if strings.TrimSpace(word.Headword) == "" {
			continue
		}
		src.Triples = append(src.Triples, glossary.Triple{
			Headword:   strings.TrimSpace(word.Headword),
			Gloss:      word.Gloss,
			Definition: word.Definition,
		})
	}
	return src, nil
}
