package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"wordrank/internal/archive"
	"wordrank/internal/wordfreq"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const runTimeLayout = "2006-01-02 15:04:05"

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, colorize bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if colorize {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgHiBlue}
	}

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// renderRanking lays entries out as rank/word/count rows starting at firstRank.
func renderRanking(entries []wordfreq.Entry, firstRank int, colorize bool) string {
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(firstRank + i),
			entry.Word,
			strconv.Itoa(entry.Count),
		})
	}
	return renderTable(
		[]string{"Rank", "Word", "Count"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
		colorize,
	)
}

func renderRuns(runs []archive.Run, colorize bool) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(runTimeLayout),
			strconv.Itoa(run.TotalTokens),
			strconv.Itoa(run.DistinctWords),
			run.Source,
		})
	}
	return renderTable(
		[]string{"ID", "Created", "Tokens", "Distinct", "Source"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		colorize,
	)
}

func printRunDetails(out io.Writer, run archive.Run) {
	fmt.Fprintf(out, "Run:          %s\n", run.ID)
	fmt.Fprintf(out, "Source:       %s\n", run.Source)
	fmt.Fprintf(out, "Created:      %s\n", run.CreatedAt.Local().Format(runTimeLayout))
	fmt.Fprintf(out, "Tokens:       %d\n", run.TotalTokens)
	fmt.Fprintf(out, "Distinct:     %d\n", run.DistinctWords)
	fmt.Fprintf(out, "Punctuation:  %q\n", run.Punctuation)
	fmt.Fprintf(out, "Case folding: %s\n", yesNo(run.CaseFold))
	fmt.Fprintf(out, "Digest:       %s\n", run.Digest)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
