package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wordrank/internal/wordfreq"
)

// ErrRunNotFound is returned when a run ID does not exist in the archive.
var ErrRunNotFound = errors.New("run not found")

// Run summarizes one archived ranking.
type Run struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
	TotalTokens   int       `json:"total_tokens"`
	DistinctWords int       `json:"distinct_words"`
	Punctuation   string    `json:"punctuation"`
	CaseFold      bool      `json:"case_fold"`
	// Digest fingerprints the word table; see Digest.
	Digest string `json:"digest"`
}

// RunInput describes a ranking to archive.
type RunInput struct {
	Source    string
	Tokenizer wordfreq.TokenizerOptions
	Ranking   wordfreq.Ranking
	// CreatedAt defaults to the current time.
	CreatedAt time.Time
}

// Query narrows the entries returned for a run. Zero values match everything.
type Query struct {
	Prefix   string
	Contains string
	Limit    int
	Offset   int
}

const runColumns = "id, source, created_at, total_tokens, distinct_words, punctuation, case_fold, digest"

// timestampLayout has fixed-width fractional seconds so created_at sorts as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveRun stores a ranking and its word counts in a single transaction.
func (s *Store) SaveRun(ctx context.Context, in RunInput) (Run, error) {
	ctx = ensureContext(ctx)
	created := in.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	run := Run{
		ID:            uuid.NewString(),
		Source:        strings.TrimSpace(in.Source),
		CreatedAt:     created.UTC(),
		TotalTokens:   in.Ranking.Total(),
		DistinctWords: in.Ranking.Len(),
		Punctuation:   in.Tokenizer.Punctuation,
		CaseFold:      in.Tokenizer.CaseFold,
		Digest:        Digest(in.Ranking),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.Source,
			run.CreatedAt.Format(timestampLayout),
			run.TotalTokens,
			run.DistinctWords,
			run.Punctuation,
			boolToInt(run.CaseFold),
			run.Digest,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, "INSERT INTO word_counts (run_id, word, count) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("prepare word insert: %w", err)
		}
		defer stmt.Close()
		for _, entry := range in.Ranking.Entries() {
			if _, err := stmt.ExecContext(ctx, run.ID, entry.Word, entry.Count); err != nil {
				return fmt.Errorf("insert word %q: %w", entry.Word, err)
			}
		}
		return nil
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns every archived run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return collectRuns(rows)
}

// FindByDigest returns the runs whose word table matches digest, newest first.
func (s *Store) FindByDigest(ctx context.Context, digest string) ([]Run, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE digest = ? ORDER BY created_at DESC, id`,
		strings.TrimSpace(digest),
	)
	if err != nil {
		return nil, fmt.Errorf("find runs by digest: %w", err)
	}
	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun loads one run summary.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, strings.TrimSpace(id))
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// DeleteRun removes a run and its word counts.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM word_counts WHERE run_id = ?", id); err != nil {
			return fmt.Errorf("delete word counts: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil
	})
}

// RunEntries returns the ranked entries of a run matching q. The filters are
// case-sensitive, like the in-memory ranking filter.
func (s *Store) RunEntries(ctx context.Context, id string, q Query) ([]wordfreq.Entry, error) {
	ctx = ensureContext(ctx)
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	var (
		clauses = []string{"run_id = ?"}
		args    = []any{strings.TrimSpace(id)}
	)
	if q.Prefix != "" {
		clauses = append(clauses, "substr(word, 1, length(?)) = ?")
		args = append(args, q.Prefix, q.Prefix)
	}
	if q.Contains != "" {
		clauses = append(clauses, "instr(word, ?) > 0")
		args = append(args, q.Contains)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := "SELECT word, count FROM word_counts WHERE " + strings.Join(clauses, " AND ") +
		" ORDER BY count DESC, word ASC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query run entries: %w", err)
	}
	defer rows.Close()

	entries := []wordfreq.Entry{}
	for rows.Next() {
		var entry wordfreq.Entry
		if err := rows.Scan(&entry.Word, &entry.Count); err != nil {
			return nil, fmt.Errorf("scan run entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run entries: %w", err)
	}
	return entries, nil
}

// RunRanking loads every entry of a run as a Ranking.
func (s *Store) RunRanking(ctx context.Context, id string) (wordfreq.Ranking, error) {
	entries, err := s.RunEntries(ctx, id, Query{})
	if err != nil {
		return wordfreq.Ranking{}, err
	}
	return wordfreq.NewRanking(entries), nil
}

// WordCount returns how often word occurred in a run; absent words count zero.
func (s *Store) WordCount(ctx context.Context, id, word string) (int, error) {
	ctx = ensureContext(ctx)
	if _, err := s.GetRun(ctx, id); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT count FROM word_counts WHERE run_id = ? AND word = ?",
		strings.TrimSpace(id), word,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query word count: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run      Run
		created  string
		caseFold int
	)
	if err := row.Scan(&run.ID, &run.Source, &created, &run.TotalTokens, &run.DistinctWords, &run.Punctuation, &caseFold, &run.Digest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	ts, err := time.Parse(timestampLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("parse run %s created_at: %w", run.ID, err)
	}
	run.CreatedAt = ts
	run.CaseFold = caseFold != 0
	return run, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
