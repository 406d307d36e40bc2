package lesson

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/palabra/internal/glossary"
)

var (
	ErrInvalidLessonID = errors.New("invalid lesson id")
	ErrEmptyLesson     = errors.New("lesson has no usable words")
)

var lessonIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Importer downloads lesson files into a lessons directory.
type Importer struct {
	client     *resty.Client
	dir        string
	attempts   uint
	retryDelay time.Duration
	logger     *slog.Logger
}

type ImporterOption func(*Importer)

func WithRetryAttempts(attempts uint) ImporterOption {
	return func(i *Importer) {
		i.attempts = attempts
	}
}

func WithRetryDelay(delay time.Duration) ImporterOption {
	return func(i *Importer) {
		i.retryDelay = delay
	}
}

func WithHTTPClient(client *http.Client) ImporterOption {
	return func(i *Importer) {
		i.client = resty.NewWithClient(client)
	}
}

func NewImporter(dir string, opts ...ImporterOption) *Importer {
	importer := &Importer{
		client:     resty.New(),
		dir:        dir,
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
		logger:     slog.Default().With("component", "lesson_importer"),
	}
	for _, opt := range opts {
		opt(importer)
	}
	importer.client.SetTimeout(30 * time.Second)
	return importer
}

// Import fetches rawURL and stores it as lesson id. The file extension comes
// from the URL path and defaults to .xml. The payload must parse and contain
// at least one usable word. It returns the written path.
func (i *Importer) Import(ctx context.Context, rawURL, id string) (string, error) {
	if !lessonIDPattern.MatchString(id) || id == DefaultLessonID {
		return "", fmt.Errorf("%w: %q", ErrInvalidLessonID, id)
	}
	ext, err := extensionOf(rawURL)
	if err != nil {
		return "", err
	}

	body, err := i.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	src, err := Read(bytes.NewReader(body), ext)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", rawURL, err)
	}
	if glossary.BuildDictionary(src.Triples).Len() == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyLesson, rawURL)
	}

	if err := os.MkdirAll(i.dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", i.dir, err)
	}
	dest := filepath.Join(i.dir, id+ext)
	if err := os.WriteFile(dest, body, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", dest, err)
	}
	i.logger.Info("lesson imported", "id", id, "path", dest, "words", len(src.Triples))
	return dest, nil
}

func (i *Importer) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			res, err := i.client.R().
				SetContext(ctx).
				Get(rawURL)
			if err != nil {
				return fmt.Errorf("client.R().Get(%s) > %w", rawURL, err)
			}
			switch code := res.StatusCode(); {
			case code == http.StatusOK:
				body = res.Body()
				return nil
			case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
				return fmt.Errorf("status code: %d", code)
			default:
				return retry.Unrecoverable(fmt.Errorf("status code: %d, body: %s", code, string(res.Body())))
			}
		},
		retry.Context(ctx),
		retry.Attempts(i.attempts),
		retry.Delay(i.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			i.logger.Warn("lesson download failed, retrying", "url", rawURL, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}
	return body, nil
}

func extensionOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("url.Parse(%s) > %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		return ".xml", nil
	}
	if !slices.Contains(lessonExtensions, ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return ext, nil
}
