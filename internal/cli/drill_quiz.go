package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/palabra/internal/drill"
)

const (
	commandHelp   = "?"
	commandReveal = "!"
	commandQuit   = "quit"
)

// DrillQuizCLI asks for the English translation of Spanish headwords.
type DrillQuizCLI struct {
	*InteractiveQuizCLI
	service *drill.Service
	session *drill.Session
	limit   int
	asked   int
}

// NewDrillQuizCLI creates a drill over lessonID. limit ends the drill after
// that many answered words; 0 means no limit.
func NewDrillQuizCLI(
	service *drill.Service,
	lessonID string,
	limit int,
	stdin io.Reader,
	stdout io.Writer,
) *DrillQuizCLI {
	return &DrillQuizCLI{
		InteractiveQuizCLI: newInteractiveQuizCLI(stdin, stdout),
		service:            service,
		session:            drill.NewSession(lessonID),
		limit:              limit,
	}
}

// Start picks the first word and prints the instructions.
func (r *DrillQuizCLI) Start(ctx context.Context) error {
	if _, err := r.service.NewWord(ctx, r.session); err != nil {
		return fmt.Errorf("service.NewWord() > %w", err)
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "Type the English translation. %s shows help, %s reveals the answer, %s ends the drill.\n\n",
		commandHelp, commandReveal, commandQuit)
	return nil
}

func (r *DrillQuizCLI) Session(ctx context.Context) error {
	if r.limit > 0 && r.asked >= r.limit {
		r.printScore()
		return errEnd
	}

	word := r.session.CurrentWord
	_, _ = r.bold.Fprintf(r.stdoutWriter, "%s: ", word)

	line, err := r.readLine()
	if errors.Is(err, io.EOF) {
		_, _ = fmt.Fprintln(r.stdoutWriter)
		r.printScore()
		return errEnd
	}
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case commandQuit:
		r.printScore()
		return errEnd
	case commandHelp:
		help, err := r.service.Help(ctx, r.session)
		if err != nil {
			return fmt.Errorf("service.Help() > %w", err)
		}
		if help.Definition != "" {
			_, _ = r.italic.Fprintf(r.stdoutWriter, "   %s\n", help.Definition)
		} else {
			_, _ = fmt.Fprintln(r.stdoutWriter, "   No definition for this word.")
		}
		return nil
	case commandReveal:
		translations, err := r.service.Answer(ctx, r.session, word)
		if err != nil {
			return fmt.Errorf("service.Answer() > %w", err)
		}
		_, _ = fmt.Fprintf(r.stdoutWriter, "   %s means \"%s\"\n\n", r.bold.Sprint(word), r.italic.Sprint(translations))
		r.asked++
		if _, err := r.service.NewWord(ctx, r.session); err != nil {
			return fmt.Errorf("service.NewWord() > %w", err)
		}
		return nil
	}

	result, err := r.service.Check(ctx, r.session, input)
	if err != nil {
		return fmt.Errorf("service.Check() > %w", err)
	}
	if result.Correct {
		r.asked++
		_, _ = fmt.Fprint(r.stdoutWriter, "✅ ")
		_, _ = r.correct.Fprintln(r.stdoutWriter, "¡Correcto!")
		_, _ = fmt.Fprintln(r.stdoutWriter)
		return nil
	}
	_, _ = fmt.Fprint(r.stdoutWriter, "❌ ")
	_, _ = r.incorrect.Fprintf(r.stdoutWriter, "Incorrecto. %s means \"%s\"\n", r.bold.Sprint(word), r.italic.Sprint(result.Translations))
	return nil
}

func (r *DrillQuizCLI) printScore() {
	_, _ = fmt.Fprintf(r.stdoutWriter, "Answered %d, correct %d.\n", r.session.Answered, r.session.Correct)
}
