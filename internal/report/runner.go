package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"wordrank/internal/archive"
	"wordrank/internal/export"
	"wordrank/internal/logging"
	"wordrank/internal/wordfreq"
)

// ErrInputNotFound is returned when the input text file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Options describes one pipeline invocation.
type Options struct {
	Input     string
	Tokenizer wordfreq.TokenizerOptions
	Filter    wordfreq.Match
	Selection Selection
	// Output is the CSV destination; empty skips the export.
	Output string
	Export export.Options
	// Record archives the full ranking when the runner has a store.
	Record bool
}

// Result captures everything the pipeline produced.
type Result struct {
	Source   string `json:"source"`
	Tokens   int    `json:"tokens"`
	Distinct int    `json:"distinct_words"`
	// FirstRank is the rank of Selected[0] within the filtered ranking.
	FirstRank int              `json:"first_rank"`
	Selected  []wordfreq.Entry `json:"entries"`
	Output    string           `json:"output,omitempty"`
	Run       *archive.Run     `json:"run,omitempty"`

	Ranking wordfreq.Ranking `json:"-"`
}

// Runner executes the pipeline.
type Runner struct {
	logger *slog.Logger
	store  *archive.Store
}

// NewRunner builds a runner. store may be nil when archiving is not needed.
func NewRunner(logger *slog.Logger, store *archive.Store) *Runner {
	return &Runner{
		logger: logging.NewComponentLogger(logger, "report"),
		store:  store,
	}
}

// ReadInput loads the whole input file into memory.
func ReadInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %w", ErrInputNotFound, path, err)
		}
		return "", fmt.Errorf("read input %s: %w", path, err)
	}
	return string(data), nil
}

// Run executes every stage for opts.
func (r *Runner) Run(ctx context.Context, opts Options) (Result, error) {
	if err := opts.Selection.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Record && r.store == nil {
		return Result{}, errors.New("recording requested but no archive is open")
	}
	started := time.Now()

	text, err := ReadInput(opts.Input)
	if err != nil {
		return Result{}, err
	}
	ranking := r.rank(ctx, text, opts.Tokenizer)
	return r.finish(ctx, opts, ranking, started)
}

// RunRanking executes the selection, export, and archive stages on an existing ranking.
func (r *Runner) RunRanking(ctx context.Context, opts Options, ranking wordfreq.Ranking) (Result, error) {
	if err := opts.Selection.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Record && r.store == nil {
		return Result{}, errors.New("recording requested but no archive is open")
	}
	return r.finish(ctx, opts, ranking, time.Now())
}

func (r *Runner) rank(ctx context.Context, text string, opts wordfreq.TokenizerOptions) wordfreq.Ranking {
	logger := logging.WithContext(logging.WithStage(ctx, "rank"), r.logger)
	tokens := wordfreq.Tokenize(text, opts)
	table := wordfreq.Tabulate(tokens)
	ranking := wordfreq.Rank(table)
	logger.Debug("text ranked",
		logging.Int("bytes", len(text)),
		logging.Int("tokens", len(tokens)),
		logging.Int("distinct_words", table.Len()),
	)
	return ranking
}

func (r *Runner) finish(ctx context.Context, opts Options, ranking wordfreq.Ranking, started time.Time) (Result, error) {
	result := Result{
		Source:   opts.Input,
		Tokens:   ranking.Total(),
		Distinct: ranking.Len(),
		Ranking:  ranking,
	}
	filtered := ranking.Filter(opts.Filter)
	result.Selected = opts.Selection.Apply(filtered)
	result.FirstRank = opts.Selection.FirstRank(filtered.Len())

	if output := strings.TrimSpace(opts.Output); output != "" {
		exportCtx := logging.WithStage(ctx, "export")
		if err := export.WriteFile(exportCtx, output, export.Rows(result.Selected), opts.Export); err != nil {
			logging.ErrorWithContext(logging.WithContext(exportCtx, r.logger), "export failed", "export_failed",
				logging.String("output", output),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that the output directory exists and is writable"),
			)
			return Result{}, fmt.Errorf("export %s: %w", output, err)
		}
		result.Output = output
	}

	if opts.Record {
		r.warnIfArchived(ctx, ranking)
		run, err := r.store.SaveRun(ctx, archive.RunInput{
			Source:    opts.Input,
			Tokenizer: opts.Tokenizer,
			Ranking:   ranking,
		})
		if err != nil {
			return Result{}, fmt.Errorf("archive run: %w", err)
		}
		result.Run = &run
		ctx = logging.WithRunID(ctx, run.ID)
	}

	logging.WithContext(ctx, r.logger).Info("report complete",
		logging.String("source", opts.Input),
		logging.Int("tokens", result.Tokens),
		logging.Int("distinct_words", result.Distinct),
		logging.Int("selected", len(result.Selected)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (r *Runner) warnIfArchived(ctx context.Context, ranking wordfreq.Ranking) {
	existing, err := r.store.FindByDigest(ctx, archive.Digest(ranking))
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "duplicate check failed", "archive_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the run is archived without checking for duplicates"),
		)
		return
	}
	if len(existing) == 0 {
		return
	}
	logging.WarnWithContext(logging.WithContext(ctx, r.logger), "identical word table already archived", "duplicate_run",
		logging.String(logging.FieldRunID, existing[0].ID),
		logging.Int("matching_runs", len(existing)),
		logging.String(logging.FieldErrorHint, "delete the older run with `wordrank runs delete` if it is no longer needed"),
		logging.String(logging.FieldImpact, "a second copy of the run is stored"),
	)
}
