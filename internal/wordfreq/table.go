package wordfreq

// Table maps each token to its occurrence count. It is immutable once built.
type Table struct {
	counts map[string]int
	total  int
}

// Tabulate counts every token exactly once. Empty tokens are ignored.
func Tabulate(tokens []string) *Table {
	t := &Table{counts: make(map[string]int)}
	for _, token := range tokens {
		if token == "" {
			continue
		}
		t.counts[token]++
		t.total++
	}
	return t
}

// Count returns the number of occurrences of word, or zero when absent.
func (t *Table) Count(word string) int {
	if t == nil {
		return 0
	}
	return t.counts[word]
}

// Len returns the number of distinct words.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.counts)
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	if t == nil {
		return 0
	}
	return t.total
}

// Entries returns the table contents in unspecified order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return []Entry{}
	}
	out := make([]Entry, 0, len(t.counts))
	for word, count := range t.counts {
		out = append(out, Entry{Word: word, Count: count})
	}
	return out
}
