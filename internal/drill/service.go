package drill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/at-ishikawa/palabra/internal/glossary"
	"github.com/at-ishikawa/palabra/internal/progress"
)

var (
	ErrNoWordSelected  = errors.New("no word selected")
	ErrWordNotFound    = errors.New("word not found in dictionary")
	ErrInvalidWord     = errors.New("invalid word")
	ErrEmptyDictionary = errors.New("dictionary is empty")
)

// Dictionaries returns the dictionary of a lesson.
type Dictionaries interface {
	Load(lessonID string) (*glossary.Dictionary, error)
}

// AnswerObserver is told about every checked answer.
type AnswerObserver interface {
	ObserveAnswer(lessonID string, correct bool)
}

// CheckResult is the outcome of Check.
type CheckResult struct {
	Correct    bool
	UserAnswer string
	// NewWord is the next headword after a correct answer.
	NewWord string
	// Translations is the original gloss after an incorrect answer.
	Translations string
}

// Help is what the learner sees after asking for help.
type Help struct {
	Word         string
	Definition   string
	Translations string
}

type Option func(*Service)

func WithRecorder(recorder progress.Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

func WithObserver(observer AnswerObserver) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

func WithRand(rng glossary.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service implements the drill operations. Every operation works on the
// session passed in; the caller saves it afterwards.
type Service struct {
	dictionaries Dictionaries
	recorder     progress.Recorder
	observer     AnswerObserver
	rng          glossary.Rand
	logger       *slog.Logger
	now          func() time.Time
}

// globalRand draws from the math/rand/v2 top-level source, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

func NewService(dictionaries Dictionaries, opts ...Option) *Service {
	s := &Service{
		dictionaries: dictionaries,
		recorder:     progress.NopRecorder{},
		rng:          globalRand{},
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "drill")
	return s
}

// NewWord moves the session to a random headword of its lesson.
func (s *Service) NewWord(_ context.Context, session *Session) (string, error) {
	dict, err := s.dictionaries.Load(session.LessonID)
	if err != nil {
		return "", fmt.Errorf("dictionaries.Load(%s) > %w", session.LessonID, err)
	}
	return s.pick(session, dict)
}

// Check judges answer against the session's current word. A correct answer
// moves the session to a new word.
func (s *Service) Check(ctx context.Context, session *Session, answer string) (CheckResult, error) {
	answer = strings.TrimSpace(answer)

	dict, entry, err := s.current(session)
	if err != nil {
		return CheckResult{}, err
	}

	correct := entry.IsCorrect(answer)
	session.Answered++
	if correct {
		session.Correct++
	}
	s.record(ctx, progress.Attempt{
		LessonID:   session.LessonID,
		Headword:   entry.Headword,
		Answer:     answer,
		Correct:    correct,
		AnsweredAt: s.now(),
	})
	if s.observer != nil {
		s.observer.ObserveAnswer(session.LessonID, correct)
	}

	if !correct {
		return CheckResult{
			UserAnswer:   answer,
			Translations: entry.OriginalGloss,
		}, nil
	}

	next, err := s.pick(session, dict)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{
		Correct:    true,
		UserAnswer: answer,
		NewWord:    next,
	}, nil
}

// Help marks help as shown and returns the details of the current word.
func (s *Service) Help(_ context.Context, session *Session) (Help, error) {
	_, entry, err := s.current(session)
	if err != nil {
		return Help{}, err
	}
	session.HelpShown = true
	return Help{
		Word:         entry.Headword,
		Definition:   entry.Definition,
		Translations: entry.OriginalGloss,
	}, nil
}

// Answer returns the original gloss of word in the session's lesson. The
// exact headword wins over a case-insensitive match.
func (s *Service) Answer(_ context.Context, session *Session, word string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", ErrInvalidWord
	}
	dict, err := s.dictionaries.Load(session.LessonID)
	if err != nil {
		return "", fmt.Errorf("dictionaries.Load(%s) > %w", session.LessonID, err)
	}
	entry, ok := dict.LookupFold(word)
	if !ok || entry.OriginalGloss == "" {
		return "", ErrWordNotFound
	}
	return entry.OriginalGloss, nil
}

// SelectLesson switches the session to another lesson and picks a word from it.
func (s *Service) SelectLesson(_ context.Context, session *Session, lessonID string) (string, error) {
	dict, err := s.dictionaries.Load(lessonID)
	if err != nil {
		return "", fmt.Errorf("dictionaries.Load(%s) > %w", lessonID, err)
	}
	word, err := s.pick(session, dict)
	if err != nil {
		return "", err
	}
	session.LessonID = lessonID
	return word, nil
}

// Stats summarizes the recorded answers of the session's lesson.
func (s *Service) Stats(ctx context.Context, session *Session) (progress.Summary, error) {
	attempts, err := s.recorder.FindByLesson(ctx, session.LessonID)
	if err != nil {
		return progress.Summary{}, fmt.Errorf("recorder.FindByLesson(%s) > %w", session.LessonID, err)
	}
	return progress.Summarize(attempts), nil
}

func (s *Service) current(session *Session) (*glossary.Dictionary, glossary.Entry, error) {
	if session.CurrentWord == "" {
		return nil, glossary.Entry{}, ErrNoWordSelected
	}
	dict, err := s.dictionaries.Load(session.LessonID)
	if err != nil {
		return nil, glossary.Entry{}, fmt.Errorf("dictionaries.Load(%s) > %w", session.LessonID, err)
	}
	entry, ok := dict.Lookup(session.CurrentWord)
	if !ok {
		return nil, glossary.Entry{}, ErrNoWordSelected
	}
	return dict, entry, nil
}

func (s *Service) pick(session *Session, dict *glossary.Dictionary) (string, error) {
	entry, ok := dict.Random(s.rng)
	if !ok {
		return "", ErrEmptyDictionary
	}
	session.CurrentWord = entry.Headword
	session.HelpShown = false
	return entry.Headword, nil
}

func (s *Service) record(ctx context.Context, attempt progress.Attempt) {
	if err := s.recorder.Record(ctx, attempt); err != nil {
		s.logger.Warn("failed to record an attempt",
			"lesson", attempt.LessonID,
			"headword", attempt.Headword,
			"error", err,
		)
	}
}
