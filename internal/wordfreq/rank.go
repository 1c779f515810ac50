package wordfreq

import (
	"sort"
	"strings"
)

// Entry is a ranked (word, count) pair.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Ranking is a Table sorted by count descending, then word ascending.
// The order is computed once in Rank; every view copies out of it.
type Ranking struct {
	entries []Entry
}

// Rank sorts the table. Equal counts are ordered by byte-wise ascending word
// so repeated runs always produce the same sequence.
func Rank(t *Table) Ranking {
	return sortEntries(t.Entries())
}

// RankEntries ranks entries from another source, such as an imported CSV.
// The input slice is not modified.
func RankEntries(entries []Entry) Ranking {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return sortEntries(cp)
}

func sortEntries(entries []Entry) Ranking {
	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
	return Ranking{entries: entries}
}

// NewRanking wraps entries that are already in rank order, such as rows read
// back from an archive.
func NewRanking(entries []Entry) Ranking {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Ranking{entries: cp}
}

// Less reports whether a ranks ahead of b.
func Less(a, b Entry) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Word < b.Word
}

// Len returns the number of ranked entries.
func (r Ranking) Len() int { return len(r.entries) }

// Total returns the sum of counts across the ranking.
func (r Ranking) Total() int {
	total := 0
	for _, e := range r.entries {
		total += e.Count
	}
	return total
}

// Entries returns a copy of every entry in rank order.
func (r Ranking) Entries() []Entry {
	return r.Slice(0, len(r.entries))
}

// Slice returns entries in the half-open 0-based range [from, to). Bounds are
// clamped; an empty or inverted range yields an empty slice.
func (r Ranking) Slice(from, to int) []Entry {
	if from < 0 {
		from = 0
	}
	if to > len(r.entries) {
		to = len(r.entries)
	}
	if from >= to {
		return []Entry{}
	}
	out := make([]Entry, to-from)
	copy(out, r.entries[from:to])
	return out
}

// Ranks returns the entries ranked first through last, 1-based and inclusive.
func (r Ranking) Ranks(first, last int) []Entry {
	return r.Slice(first-1, last)
}

// Top returns the n highest ranked entries. n <= 0 means all.
func (r Ranking) Top(n int) []Entry {
	if n <= 0 {
		return r.Entries()
	}
	return r.Slice(0, n)
}

// Bottom returns the n lowest ranked entries, still in rank order. n <= 0 means all.
func (r Ranking) Bottom(n int) []Entry {
	if n <= 0 {
		return r.Entries()
	}
	return r.Slice(len(r.entries)-n, len(r.entries))
}

// Match selects entries by word. Empty fields match everything.
type Match struct {
	Exact    string
	Prefix   string
	Contains string
}

func (m Match) empty() bool {
	return m.Exact == "" && m.Prefix == "" && m.Contains == ""
}

func (m Match) matches(word string) bool {
	if m.Exact != "" && word != m.Exact {
		return false
	}
	if m.Prefix != "" && !strings.HasPrefix(word, m.Prefix) {
		return false
	}
	if m.Contains != "" && !strings.Contains(word, m.Contains) {
		return false
	}
	return true
}

// Filter returns a ranking holding only matching entries, order preserved.
func (r Ranking) Filter(m Match) Ranking {
	if m.empty() {
		return r
	}
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if m.matches(e.Word) {
			out = append(out, e)
		}
	}
	return Ranking{entries: out}
}
