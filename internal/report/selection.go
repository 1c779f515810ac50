package report

import (
	"errors"
	"fmt"

	"wordrank/internal/wordfreq"
)

// ErrInvalidSelection is returned when selection bounds contradict each other.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection picks a contiguous block of ranked entries. Zero values select everything.
type Selection struct {
	Top    int
	Bottom int
	// From and To are 1-based inclusive ranks; To == 0 means through the last entry.
	From int
	To   int
}

// Validate rejects contradictory or negative bounds.
func (s Selection) Validate() error {
	switch {
	case s.Top < 0 || s.Bottom < 0 || s.From < 0 || s.To < 0:
		return fmt.Errorf("%w: bounds must be >= 0", ErrInvalidSelection)
	case s.Top > 0 && s.Bottom > 0:
		return fmt.Errorf("%w: top and bottom are mutually exclusive", ErrInvalidSelection)
	case (s.From > 0 || s.To > 0) && (s.Top > 0 || s.Bottom > 0):
		return fmt.Errorf("%w: a rank range cannot be combined with top or bottom", ErrInvalidSelection)
	case s.From > 0 && s.To > 0 && s.From > s.To:
		return fmt.Errorf("%w: rank range %d..%d is inverted", ErrInvalidSelection, s.From, s.To)
	}
	return nil
}

// Apply returns the selected entries from r.
func (s Selection) Apply(r wordfreq.Ranking) []wordfreq.Entry {
	switch {
	case s.Top > 0:
		return r.Top(s.Top)
	case s.Bottom > 0:
		return r.Bottom(s.Bottom)
	case s.From > 0 || s.To > 0:
		from := s.From
		if from == 0 {
			from = 1
		}
		to := s.To
		if to == 0 {
			to = r.Len()
		}
		return r.Ranks(from, to)
	default:
		return r.Entries()
	}
}

// FirstRank returns the 1-based rank of the first entry Apply would return
// from a ranking of n entries.
func (s Selection) FirstRank(n int) int {
	switch {
	case s.Top > 0:
		return 1
	case s.Bottom > 0:
		return max(1, n-s.Bottom+1)
	case s.From > 0:
		return s.From
	default:
		return 1
	}
}
