package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipscribe/internal/archive"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect archived transcripts",
	}

	archiveCmd.AddCommand(newArchiveListCommand(ctx))
	archiveCmd.AddCommand(newArchiveShowCommand(ctx))

	return archiveCmd
}

func openArchive(ctx *commandContext) (*archive.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		return nil, fmt.Errorf("open transcript archive: %w", err)
	}
	return store, nil
}

func newArchiveListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openArchive(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Archive is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				archived := ""
				if !entry.ArchivedAt.IsZero() {
					archived = entry.ArchivedAt.Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{entry.URL, entry.Title, entry.Language, archived})
			}
			fmt.Fprintln(out, renderTable([]string{"URL", "Title", "Language", "Archived"}, rows))
			return nil
		},
	}
}

func newArchiveShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <url>",
		Short: "Print an archived transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openArchive(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entry, metadata, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("no archived transcript for %s", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "URL:      %s\n", entry.URL)
			if entry.Title != "" {
				fmt.Fprintf(out, "Title:    %s\n", entry.Title)
			}
			if metadata != nil && metadata.Author != "" {
				fmt.Fprintf(out, "Author:   %s\n", metadata.Author)
			}
			if entry.Language != "" {
				fmt.Fprintf(out, "Language: %s\n", entry.Language)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, entry.Transcript)
			return nil
		},
	}
}
