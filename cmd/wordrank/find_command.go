package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wordrank/internal/config"
	"wordrank/internal/report"
	"wordrank/internal/wordfreq"
)

func newFindCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "find <input> <phrase>",
		Short: "List the sentences that start with a phrase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			text, err := report.ReadInput(input)
			if err != nil {
				return err
			}
			phrase := args[1]
			occurrences := wordfreq.FindPhrase(text, phrase)

			if jsonOutput {
				return writeJSON(cmd, struct {
					Phrase      string                `json:"phrase"`
					Count       int                   `json:"count"`
					Occurrences []wordfreq.Occurrence `json:"occurrences"`
				}{phrase, len(occurrences), occurrences})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%q occurs %d time(s) in %s\n", phrase, len(occurrences), input)
			for _, occ := range occurrences {
				fmt.Fprintf(out, "  @%d  %s\n", occ.Offset, strings.Join(strings.Fields(occ.Sentence), " "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
