package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/palabra/internal/glossary"
	"github.com/at-ishikawa/palabra/internal/lesson"
)

// lessonReport is the validation outcome of one lesson file.
type lessonReport struct {
	Lesson  lesson.Lesson
	Records int
	Entries int
	Err     error
}

func (r lessonReport) skipped() int {
	return r.Records - r.Entries
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every lesson file can be read and has words to drill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			lessons, err := newCatalog(cfg).List()
			if err != nil {
				return fmt.Errorf("catalog.List() > %w", err)
			}

			reports := make([]lessonReport, 0, len(lessons))
			for _, l := range lessons {
				reports = append(reports, validateLesson(l))
			}

			failed := displayValidationResults(cmd.OutOrStdout(), reports)
			if failed > 0 {
				return fmt.Errorf("validation failed with %d error(s)", failed)
			}
			return nil
		},
	}
}

func validateLesson(l lesson.Lesson) lessonReport {
	report := lessonReport{Lesson: l}
	src, err := lesson.ReadFile(l.Path)
	if err != nil {
		report.Err = err
		return report
	}
	report.Records = src.Records
	report.Entries = glossary.BuildDictionary(src.Triples).Len()
	if report.Entries == 0 {
		report.Err = lesson.ErrEmptyLesson
	}
	return report
}

// displayValidationResults prints one line per lesson and returns the number
// of failed lessons.
func displayValidationResults(out io.Writer, reports []lessonReport) int {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			_, _ = red.Fprintf(out, "✗ %s (%s): %v\n", r.Lesson.ID, r.Lesson.Path, r.Err)
			continue
		}
		_, _ = green.Fprintf(out, "✓ %s: %d words", r.Lesson.ID, r.Entries)
		if r.skipped() > 0 {
			_, _ = fmt.Fprintf(out, ", %d records skipped", r.skipped())
		}
		_, _ = fmt.Fprintln(out)
	}

	if failed == 0 {
		_, _ = fmt.Fprintln(out, "All lessons are valid!")
	}
	return failed
}
