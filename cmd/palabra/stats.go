package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/palabra/internal/bootstrap"
	"github.com/at-ishikawa/palabra/internal/lesson"
	"github.com/at-ishikawa/palabra/internal/progress"
)

func newStatsCommand() *cobra.Command {
	var (
		lessonID    string
		year, month int
	)

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show recorded answers of a lesson",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			recorder, closeRecorder, err := bootstrap.NewRecorder(ctx, cfg)
			if err != nil {
				return fmt.Errorf("bootstrap.NewRecorder() > %w", err)
			}
			defer func() {
				_ = closeRecorder()
			}()

			attempts, err := recorder.FindByLesson(ctx, lessonID)
			if err != nil {
				return fmt.Errorf("recorder.FindByLesson(%s) > %w", lessonID, err)
			}
			displayStats(cmd, lessonID, progress.Summarize(attempts), progress.Monthly(attempts, year, month))
			return nil
		},
	}

	command.Flags().StringVar(&lessonID, "lesson", lesson.DefaultLessonID, "lesson to summarize")
	command.Flags().IntVar(&year, "year", 0, "Filter the monthly report by year (e.g., 2025)")
	command.Flags().IntVar(&month, "month", 0, "Filter the monthly report by month (1-12), requires --year")

	return command
}

func displayStats(cmd *cobra.Command, lessonID string, summary progress.Summary, periods []progress.PeriodStats) {
	out := cmd.OutOrStdout()
	if summary.Total == 0 {
		_, _ = fmt.Fprintf(out, "No answers recorded for lesson %s yet.\n", lessonID)
		return
	}

	_, _ = fmt.Fprintf(out, "Lesson %s: %d answers, %d correct (%.1f%%), %d words\n",
		lessonID, summary.Total, summary.Correct, summary.Accuracy*100, summary.Words)

	if len(summary.Weakest) > 0 {
		_, _ = fmt.Fprintln(out, "\nWeakest words:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "WORD\tCORRECT\tINCORRECT")
		for _, word := range summary.Weakest {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\n", word.Headword, word.Correct, word.Incorrect)
		}
		_ = w.Flush()
	}

	if len(periods) > 0 {
		_, _ = fmt.Fprintln(out, "\nBy month:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "MONTH\tANSWERS\tCORRECT\tWORDS")
		for _, p := range periods {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", p.Period, p.Attempts, p.Correct, p.UniqueWords)
		}
		_ = w.Flush()
	}
}
