package progress

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLRecorder keeps one YAML file of attempts per lesson.
type YAMLRecorder struct {
	directory string
	mu        sync.Mutex
}

func NewYAMLRecorder(directory string) *YAMLRecorder {
	return &YAMLRecorder{directory: directory}
}

func (r *YAMLRecorder) Record(_ context.Context, attempts ...Attempt) error {
	if len(attempts) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	byLesson := make(map[string][]Attempt)
	var order []string
	for _, a := range attempts {
		if _, ok := byLesson[a.LessonID]; !ok {
			order = append(order, a.LessonID)
		}
		byLesson[a.LessonID] = append(byLesson[a.LessonID], a)
	}

	for _, lessonID := range order {
		path := r.path(lessonID)
		existing, err := readYamlFile[[]Attempt](path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("readYamlFile(%s) > %w", path, err)
		}
		if err := writeYamlFile(path, append(existing, byLesson[lessonID]...)); err != nil {
			return fmt.Errorf("writeYamlFile(%s) > %w", path, err)
		}
	}
	return nil
}

func (r *YAMLRecorder) FindByLesson(_ context.Context, lessonID string) ([]Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.path(lessonID)
	attempts, err := readYamlFile[[]Attempt](path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("readYamlFile(%s) > %w", path, err)
	}
	return attempts, nil
}

func (r *YAMLRecorder) path(lessonID string) string {
	return filepath.Join(r.directory, lessonID+".yml")
}

func readYamlFile[T any](path string) (T, error) {
	var result T
	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return result, nil
}

func writeYamlFile(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}
