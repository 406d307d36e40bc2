package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/palabra/internal/lesson"
	"github.com/at-ishikawa/palabra/internal/pdf"
)

func newLessonsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "lessons",
		Short: "Manage lesson files",
	}
	command.AddCommand(
		newLessonsListCommand(),
		newLessonsImportCommand(),
		newLessonsExportCommand(),
	)
	return command
}

func newLessonsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the lessons and their word counts",
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

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tWORDS\tPATH")
			for _, l := range lessons {
				words := "-"
				if count, err := lesson.Count(l.Path); err == nil {
					words = fmt.Sprint(count)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.Name, words, l.Path)
			}
			return w.Flush()
		},
	}
}

func newLessonsImportCommand() *cobra.Command {
	var attempts uint

	command := &cobra.Command{
		Use:   "import <url> <id>",
		Short: "Download a lesson file into the lessons directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			importer := lesson.NewImporter(cfg.Lessons.Directory, lesson.WithRetryAttempts(attempts))
			path, err := importer.Import(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported lesson %s to %s\n", args[1], path)
			return nil
		},
	}
	command.Flags().UintVar(&attempts, "attempts", 3, "download attempts before giving up")

	return command
}

func newLessonsExportCommand() *cobra.Command {
	var (
		showAnswers bool
		toPDF       bool
	)

	command := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a lesson as a Markdown word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			catalog := newCatalog(cfg)
			l, err := catalog.Find(args[0])
			if err != nil {
				return fmt.Errorf("catalog.Find(%s) > %w", args[0], err)
			}
			dict, err := catalog.Load(l.ID)
			if err != nil {
				return fmt.Errorf("catalog.Load(%s) > %w", l.ID, err)
			}

			path, err := lesson.ExportFile(cfg.Lessons.ExportDir, l, dict, lesson.ExportOptions{
				TemplatePath: cfg.Lessons.ExportTemplate,
				ShowAnswers:  showAnswers,
			})
			if err != nil {
				return fmt.Errorf("lesson.ExportFile() > %w", err)
			}
			if toPDF {
				path, err = pdf.ConvertMarkdownToPDF(path)
				if err != nil {
					return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported lesson %s to %s\n", l.ID, path)
			return nil
		},
	}
	command.Flags().BoolVar(&showAnswers, "answers", false, "list every accepted answer of each word")
	command.Flags().BoolVar(&toPDF, "pdf", false, "also convert the export to PDF")

	return command
}
