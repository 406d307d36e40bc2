package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/palabra/internal/glossary"
	"github.com/at-ishikawa/palabra/internal/lesson"
)

var errIncorrect = errors.New("incorrect answer")

func newCheckCommand() *cobra.Command {
	var lessonID string

	command := &cobra.Command{
		Use:   "check <headword> <answer>",
		Short: "Check one answer against the dictionary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dict, err := newCatalog(cfg).Load(lessonID)
			if err != nil {
				return fmt.Errorf("catalog.Load(%s) > %w", lessonID, err)
			}
			entry, ok := dict.LookupFold(args[0])
			if !ok {
				return fmt.Errorf("%s is not in lesson %s", args[0], lessonID)
			}

			out := cmd.OutOrStdout()
			answer := strings.TrimSpace(args[1])
			if glossary.IsCorrect(answer, entry) {
				_, _ = fmt.Fprintf(out, "correct: %s means %q\n", entry.Headword, entry.OriginalGloss)
				return nil
			}
			_, _ = fmt.Fprintf(out, "incorrect: %s means %q\n", entry.Headword, entry.OriginalGloss)
			return errIncorrect
		},
	}
	command.Flags().StringVar(&lessonID, "lesson", lesson.DefaultLessonID, "lesson to look the headword up in")

	return command
}

func newExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <gloss>",
		Short: "Print every answer a gloss accepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, answer := range glossary.Expand(args[0]) {
				_, _ = fmt.Fprintln(out, answer)
			}
			return nil
		},
	}
}
