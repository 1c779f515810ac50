package archive_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"wordrank/internal/archive"
	"wordrank/internal/testsupport"
	"wordrank/internal/wordfreq"
)

func rankText(text string) wordfreq.Ranking {
	return wordfreq.Rank(wordfreq.Tabulate(wordfreq.Tokenize(text, wordfreq.DefaultTokenizerOptions())))
}

func saveDream(t *testing.T, store *archive.Store, created time.Time) archive.Run {
	t.Helper()
	run, err := store.SaveRun(context.Background(), archive.RunInput{
		Source:    "dream.txt",
		Tokenizer: wordfreq.DefaultTokenizerOptions(),
		Ranking:   rankText(testsupport.DreamExcerpt),
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	return run
}

func TestSaveAndGetRun(t *testing.T) {
	store := testsupport.MustOpenArchive(t, testsupport.NewConfig(t))
	ctx := context.Background()
	created := time.Date(2024, 8, 28, 15, 0, 0, 0, time.UTC)

	run := saveDream(t, store, created)
	if run.ID == "" {
		t.Fatal("expected run ID to be assigned")
	}
	if run.TotalTokens != 9 || run.DistinctWords != 5 {
		t.Fatalf("unexpected run totals: %+v", run)
	}

	fetched, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched.Source != "dream.txt" || !fetched.CreatedAt.Equal(created) || !fetched.CaseFold || fetched.Punctuation != ".,-!:" {
		t.Fatalf("unexpected fetched run: %+v", fetched)
	}
}

func TestRunEntriesMatchInMemoryRanking(t *testing.T) {
	store := testsupport.MustOpenArchive(t, testsupport.NewConfig(t))
	ctx := context.Background()
	text := "zeta alpha mu beta omega zeta alpha mu beta omega gamma Alpha"
	run, err := store.SaveRun(ctx, archive.RunInput{
		Source:    "greek.txt",
		Tokenizer: wordfreq.TokenizerOptions{CaseFold: false},
		Ranking:   wordfreq.Rank(wordfreq.Tabulate(wordfreq.Tokenize(text, wordfreq.TokenizerOptions{}))),
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	want := wordfreq.Rank(wordfreq.Tabulate(wordfreq.Tokenize(text, wordfreq.TokenizerOptions{}))).Entries()
	got, err := store.RunEntries(ctx, run.ID, archive.Query{})
	if err != nil {
		t.Fatalf("RunEntries failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("archive order differs from ranker:\n got  %v\n want %v", got, want)
	}

	ranking, err := store.RunRanking(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunRanking failed: %v", err)
	}
	if ranking.Total() != 12 {
		t.Fatalf("expected total 12, got %d", ranking.Total())
	}
}

func TestRunEntriesFilters(t *testing.T) {
	store := testsupport.MustOpenArchive(t, testsupport.NewConfig(t))
	ctx := context.Background()
	run := saveDream(t, store, time.Time{})

	tests := []struct {
		name  string
		query archive.Query
		want  []string
	}{
		{"prefix", archive.Query{Prefix: "d"}, []string{"dream"}},
		{"contains", archive.Query{Contains: "a"}, []string{"a", "dream", "have", "today"}},
		{"limit", archive.Query{Limit: 2}, []string{"a", "dream"}},
		{"offset", archive.Query{Limit: 2, Offset: 3}, []string{"i", "today"}},
		{"prefix is case sensitive", archive.Query{Prefix: "D"}, []string{}},
		{"wildcards are literal", archive.Query{Contains: "%"}, []string{}},
		{"injection attempt is data", archive.Query{Prefix: "a'; DROP TABLE runs; --"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.RunEntries(ctx, run.ID, tt.query)
			if err != nil {
				t.Fatalf("RunEntries failed: %v", err)
			}
			words := make([]string, 0, len(entries))
			for _, e := range entries {
				words = append(words, e.Word)
			}
			if !reflect.DeepEqual(words, tt.want) {
				t.Fatalf("got %v, want %v", words, tt.want)
			}
		})
	}

	if _, err := store.GetRun(ctx, run.ID); err != nil {
		t.Fatalf("runs table should survive injection attempt: %v", err)
	}
}

func TestWordCount(t *testing.T) {
	store := testsupport.MustOpenArchive(t, testsupport.NewConfig(t))
	ctx := context.Background()
	run := saveDream(t, store, time.Time{})

	count, err := store.WordCount(ctx, run.ID, "dream")
	if err != nil || count != 2 {
		t.Fatalf("WordCount(dream) = %d, %v", count, err)
	}
	count, err = store.WordCount(ctx, run.ID, "nightmare")
	if err != nil || count != 0 {
		t.Fatalf("WordCount(nightmare) = %d, %v", count, err)
	}
	if _, err := store.WordCount(ctx, "missing", "dream"); !errors.Is(err, archive.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListAndDeleteRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArchive(t, cfg)
	ctx := context.Background()

	older := saveDream(t, store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := saveDream(t, store, time.Date(2024, 1, 1, 0, 0, 0, 500, time.UTC))

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != newer.ID || runs[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", runs)
	}

	if err := store.DeleteRun(ctx, older.ID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	if _, err := store.GetRun(ctx, older.ID); !errors.Is(err, archive.ErrRunNotFound) {
		t.Fatalf("expected deleted run to be missing, got %v", err)
	}
	if err := store.DeleteRun(ctx, older.ID); !errors.Is(err, archive.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound on second delete, got %v", err)
	}

	db, err := sql.Open("sqlite", cfg.Paths.Database)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	defer db.Close()
	var orphans int
	if err := db.QueryRow("SELECT COUNT(1) FROM word_counts WHERE run_id = ?", older.ID).Scan(&orphans); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected word counts removed with run, found %d", orphans)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := archive.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := archive.Open(context.Background(), path); !errors.Is(err, archive.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestSaveEmptyRanking(t *testing.T) {
	store := testsupport.MustOpenArchive(t, testsupport.NewConfig(t))
	ctx := context.Background()
	run, err := store.SaveRun(ctx, archive.RunInput{Source: "empty.txt", Ranking: rankText("")})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	entries, err := store.RunEntries(ctx, run.ID, archive.Query{})
	if err != nil {
		t.Fatalf("RunEntries failed: %v", err)
	}
	if len(entries) != 0 || run.TotalTokens != 0 {
		t.Fatalf("expected empty run, got %+v / %v", run, entries)
	}
}

func TestFindByDigest(t *testing.T) {
	store := testsupport.MustOpenArchive(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first := saveDream(t, store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	second := saveDream(t, store, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	other, err := store.SaveRun(ctx, archive.RunInput{
		Source:  "other.txt",
		Ranking: rankText("something else entirely"),
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	if first.Digest != second.Digest {
		t.Fatalf("identical rankings produced different digests: %s vs %s", first.Digest, second.Digest)
	}
	if first.Digest == other.Digest {
		t.Fatal("different rankings share a digest")
	}

	runs, err := store.FindByDigest(ctx, first.Digest)
	if err != nil {
		t.Fatalf("FindByDigest failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("unexpected runs for digest: %+v", runs)
	}
}

func TestDigestIgnoresSource(t *testing.T) {
	a := archive.Digest(rankText("Dream, dream: today."))
	b := archive.Digest(wordfreq.RankEntries([]wordfreq.Entry{{Word: "today", Count: 1}, {Word: "dream", Count: 2}}))
	if a != b {
		t.Fatalf("digest differs for the same word table: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex digits, got %q", a)
	}
}
