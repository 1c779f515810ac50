package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wordrank/internal/archive"
	"wordrank/internal/config"
	"wordrank/internal/export"
	"wordrank/internal/report"
	"wordrank/internal/wordfreq"
)

type countFlags struct {
	output      string
	punctuation string
	noCaseFold  bool
	top         int
	bottom      int
	from        int
	to          int
	index       bool
	record      bool
	prefix      string
	contains    string
	json        bool
	quiet       bool
}

func newCountCommand(ctx *commandContext) *cobra.Command {
	var flags countFlags

	cmd := &cobra.Command{
		Use:   "count <input>",
		Short: "Count, rank, and export the words of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			defer ctx.closeLogger()
			input, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			opts, err := countOptions(cmd, cfg, flags, input)
			if err != nil {
				return err
			}

			var result report.Result
			run := func(store *archive.Store) error {
				var runErr error
				result, runErr = report.NewRunner(logger, store).Run(cmd.Context(), opts)
				return runErr
			}
			if opts.Record {
				err = ctx.withArchive(cmd.Context(), run)
			} else {
				err = run(nil)
			}
			if err != nil {
				return err
			}

			if flags.json {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			if !flags.quiet && len(result.Selected) > 0 {
				fmt.Fprintln(out, renderRanking(result.Selected, result.FirstRank, shouldColorize(out)))
			}
			fmt.Fprintf(out, "Ranked %d tokens (%d distinct words) from %s\n", result.Tokens, result.Distinct, result.Source)
			if result.Output != "" {
				fmt.Fprintf(out, "Wrote %d rows to %s\n", len(result.Selected), result.Output)
			}
			if result.Run != nil {
				fmt.Fprintf(out, "Archived run %s\n", result.Run.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "CSV destination (omit to skip the export)")
	cmd.Flags().StringVar(&flags.punctuation, "punctuation", "", "Characters treated as word separators (defaults to the configured set)")
	cmd.Flags().BoolVar(&flags.noCaseFold, "no-case-fold", false, "Keep the original letter case of words")
	cmd.Flags().IntVar(&flags.top, "top", 0, "Keep only the N highest ranked words")
	cmd.Flags().IntVar(&flags.bottom, "bottom", 0, "Keep only the N lowest ranked words")
	cmd.Flags().IntVar(&flags.from, "from", 0, "First rank to keep (1-based, inclusive)")
	cmd.Flags().IntVar(&flags.to, "to", 0, "Last rank to keep (1-based, inclusive)")
	cmd.Flags().BoolVar(&flags.index, "index", false, "Write a leading positional index column")
	cmd.Flags().BoolVar(&flags.record, "record", false, "Archive the run in the local database")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Keep only words starting with this prefix")
	cmd.Flags().StringVar(&flags.contains, "contains", "", "Keep only words containing this substring")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Skip the ranking table")
	return cmd
}

// countOptions merges explicit flags over configured defaults.
func countOptions(cmd *cobra.Command, cfg *config.Config, flags countFlags, input string) (report.Options, error) {
	tokenizer := wordfreq.TokenizerOptions{
		Punctuation: cfg.Tokenizer.Punctuation,
		CaseFold:    cfg.CaseFoldEnabled(),
	}
	if cmd.Flags().Changed("punctuation") {
		tokenizer.Punctuation = flags.punctuation
	}
	if flags.noCaseFold {
		tokenizer.CaseFold = false
	}

	selection := report.Selection{Top: cfg.Report.Top, Bottom: cfg.Report.Bottom}
	for _, name := range []string{"top", "bottom", "from", "to"} {
		if cmd.Flags().Changed(name) {
			selection = report.Selection{Top: flags.top, Bottom: flags.bottom, From: flags.from, To: flags.to}
			break
		}
	}
	if err := selection.Validate(); err != nil {
		return report.Options{}, err
	}

	includeIndex := cfg.Report.IncludeIndex
	if cmd.Flags().Changed("index") {
		includeIndex = flags.index
	}

	output := strings.TrimSpace(flags.output)
	if output != "" {
		expanded, err := config.ExpandPath(output)
		if err != nil {
			return report.Options{}, fmt.Errorf("resolve output path: %w", err)
		}
		output = expanded
	}

	return report.Options{
		Input:     input,
		Tokenizer: tokenizer,
		Filter:    wordfreq.Match{Prefix: flags.prefix, Contains: flags.contains},
		Selection: selection,
		Output:    output,
		Export:    export.Options{IncludeIndex: includeIndex},
		Record:    flags.record,
	}, nil
}
