package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/palabra/internal/bootstrap"
	"github.com/at-ishikawa/palabra/internal/cli"
	"github.com/at-ishikawa/palabra/internal/drill"
	"github.com/at-ishikawa/palabra/internal/lesson"
)

func newQuizCommand() *cobra.Command {
	var (
		lessonID string
		limit    int
	)

	command := &cobra.Command{
		Use:   "quiz",
		Short: "Drill the words of a lesson in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
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

			service := drill.NewService(newCatalog(cfg), drill.WithRecorder(recorder))
			quizCLI := cli.NewDrillQuizCLI(service, lessonID, limit, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := quizCLI.Start(ctx); err != nil {
				return err
			}
			return quizCLI.Run(ctx, quizCLI)
		},
	}

	command.Flags().StringVar(&lessonID, "lesson", lesson.DefaultLessonID, "lesson to drill")
	command.Flags().IntVar(&limit, "limit", 0, "stop after this many answers (0 means no limit)")

	return command
}
