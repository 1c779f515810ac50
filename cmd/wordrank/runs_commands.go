package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wordrank/internal/archive"
	"wordrank/internal/config"
	"wordrank/internal/export"
	"wordrank/internal/wordfreq"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and manage archived runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsExportCommand(ctx))
	runsCmd.AddCommand(newRunsImportCommand(ctx))
	runsCmd.AddCommand(newRunsDeleteCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withArchive(cmd.Context(), func(store *archive.Store) error {
				runs, err := store.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No archived runs")
					return nil
				}
				fmt.Fprintln(out, renderRuns(runs, shouldColorize(out)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var (
		query      archive.Query
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an archived run and its ranked words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withArchive(cmd.Context(), func(store *archive.Store) error {
				run, err := store.GetRun(cmd.Context(), id)
				if err != nil {
					return err
				}
				entries, err := store.RunEntries(cmd.Context(), id, query)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, struct {
						Run     archive.Run      `json:"run"`
						Entries []wordfreq.Entry `json:"entries"`
					}{run, entries})
				}
				out := cmd.OutOrStdout()
				printRunDetails(out, run)
				if len(entries) > 0 {
					fmt.Fprintln(out, renderRanking(entries, max(query.Offset, 0)+1, shouldColorize(out)))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&query.Prefix, "prefix", "", "Only show words starting with this prefix")
	cmd.Flags().StringVar(&query.Contains, "contains", "", "Only show words containing this substring")
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "Maximum number of words to show (0 = all)")
	cmd.Flags().IntVar(&query.Offset, "offset", 0, "Number of ranked words to skip")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRunsExportCommand(ctx *commandContext) *cobra.Command {
	var includeIndex bool

	cmd := &cobra.Command{
		Use:   "export <id> <path>",
		Short: "Write an archived run to a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("index") {
				includeIndex = cfg.Report.IncludeIndex
			}
			target, err := config.ExpandPath(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			return ctx.withArchive(cmd.Context(), func(store *archive.Store) error {
				ranking, err := store.RunRanking(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				rows := export.Rows(ranking.Entries())
				if err := export.WriteFile(cmd.Context(), target, rows, export.Options{IncludeIndex: includeIndex}); err != nil {
					return fmt.Errorf("export %s: %w", target, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), target)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&includeIndex, "index", false, "Write a leading positional index column")
	return cmd
}

func newRunsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Archive a previously exported word table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			rows, err := export.ReadFile(source)
			if err != nil {
				return err
			}
			return ctx.withArchive(cmd.Context(), func(store *archive.Store) error {
				run, err := store.SaveRun(cmd.Context(), archive.RunInput{
					Source: source,
					Tokenizer: wordfreq.TokenizerOptions{
						Punctuation: cfg.Tokenizer.Punctuation,
						CaseFold:    cfg.CaseFoldEnabled(),
					},
					Ranking: wordfreq.RankEntries(export.Entries(rows)),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words as run %s\n", run.DistinctWords, run.ID)
				return nil
			})
		},
	}
}

func newRunsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withArchive(cmd.Context(), func(store *archive.Store) error {
				if err := store.DeleteRun(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", id)
				return nil
			})
		},
	}
}
