package lesson

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/at-ishikawa/palabra/internal/glossary"
)

// DefaultLessonID names the main dictionary file.
const DefaultLessonID = "all"

var ErrLessonNotFound = errors.New("lesson not found")

var lessonExtensions = []string{".xml", ".yml", ".yaml"}

// Lesson is one selectable word list.
type Lesson struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"-"`
}

// LoadObserver is told about every dictionary load. Result is "ok",
// "fallback" or "error".
type LoadObserver interface {
	ObserveDictionaryLoad(lessonID, result string, entries int)
}

type CatalogOption func(*Catalog)

func WithLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = logger
	}
}

func WithObserver(observer LoadObserver) CatalogOption {
	return func(c *Catalog) {
		c.observer = observer
	}
}

// Catalog discovers lessons and caches their dictionaries. Cached values are
// immutable and replaced wholesale, so callers may keep using a dictionary
// after a Reload.
type Catalog struct {
	dictionaryFile string
	dir            string
	logger         *slog.Logger
	observer       LoadObserver

	loads singleflight.Group

	mu         sync.RWMutex
	cache      map[string]*glossary.Dictionary
	generation uint64
}

func NewCatalog(dictionaryFile, dir string, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		dictionaryFile: dictionaryFile,
		dir:            dir,
		logger:         slog.Default(),
		cache:          make(map[string]*glossary.Dictionary),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "lesson_catalog")
	return c
}

// List returns the main dictionary followed by every lesson file in the
// lessons directory. Numeric ids sort numerically and come before named ones.
// A missing lessons directory is not an error.
func (c *Catalog) List() ([]Lesson, error) {
	lessons := []Lesson{{ID: DefaultLessonID, Name: "All words", Path: c.dictionaryFile}}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lessons, nil
		}
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", c.dir, err)
	}

	seen := make(map[string]bool)
	var found []Lesson
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !slices.Contains(lessonExtensions, ext) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if id == "" || id == DefaultLessonID || seen[id] {
			continue
		}
		seen[id] = true
		found = append(found, Lesson{
			ID:   id,
			Name: lessonName(id),
			Path: filepath.Join(c.dir, entry.Name()),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		ni, errI := strconv.Atoi(found[i].ID)
		nj, errJ := strconv.Atoi(found[j].ID)
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return found[i].ID < found[j].ID
		}
	})
	return append(lessons, found...), nil
}

// Find returns the lesson with the given id.
func (c *Catalog) Find(id string) (Lesson, error) {
	lessons, err := c.List()
	if err != nil {
		return Lesson{}, err
	}
	for _, l := range lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return Lesson{}, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
}

// Load returns the dictionary of a lesson, reading it on first use.
// Concurrent loads of the same lesson share one read. When the main
// dictionary cannot be read the one-word fallback is served.
func (c *Catalog) Load(id string) (*glossary.Dictionary, error) {
	c.mu.RLock()
	dict, ok := c.cache[id]
	generation := c.generation
	c.mu.RUnlock()
	if ok {
		return dict, nil
	}

	key := fmt.Sprintf("%d/%s", generation, id)
	v, err, _ := c.loads.Do(key, func() (any, error) {
		dict, err := c.read(id)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation == generation {
			c.cache[id] = dict
		}
		c.mu.Unlock()
		return dict, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*glossary.Dictionary), nil
}

func (c *Catalog) read(id string) (*glossary.Dictionary, error) {
	lesson, err := c.Find(id)
	if err != nil {
		return nil, err
	}

	src, err := ReadFile(lesson.Path)
	if err != nil {
		if id != DefaultLessonID {
			c.observe(id, "error", 0)
			return nil, fmt.Errorf("load lesson %s: %w", id, err)
		}
		c.logger.Warn("dictionary could not be loaded, serving fallback",
			"path", lesson.Path,
			"error", err,
		)
		dict := glossary.Fallback()
		c.observe(id, "fallback", dict.Len())
		return dict, nil
	}

	dict := glossary.BuildDictionary(src.Triples)
	c.logger.Debug("dictionary loaded",
		"lesson", id,
		"records", src.Records,
		"entries", dict.Len(),
	)
	c.observe(id, "ok", dict.Len())
	return dict, nil
}

// Reload drops every cached dictionary. Loads already in flight finish but
// do not repopulate the cache.
func (c *Catalog) Reload() {
	c.mu.Lock()
	c.cache = make(map[string]*glossary.Dictionary)
	c.generation++
	c.mu.Unlock()
}

func (c *Catalog) observe(id, result string, entries int) {
	if c.observer != nil {
		c.observer.ObserveDictionaryLoad(id, result, entries)
	}
}

// Count returns the number of word records in a lesson file, including the
// ones that would be skipped for a missing headword.
func Count(path string) (int, error) {
	src, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	return src.Records, nil
}

func lessonName(id string) string {
	if _, err := strconv.Atoi(id); err == nil {
		return "Lesson " + id
	}
	return id
}
