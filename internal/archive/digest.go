package archive

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash"

	"wordrank/internal/wordfreq"
)

// Digest fingerprints a ranking by its ordered word/count pairs. Two runs with
// the same digest archived the same word table, whatever their source.
func Digest(r wordfreq.Ranking) string {
	h := xxhash.New()
	for _, entry := range r.Entries() {
		_, _ = io.WriteString(h, entry.Word)
		_, _ = h.Write([]byte{0})
		_, _ = io.WriteString(h, strconv.Itoa(entry.Count))
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
