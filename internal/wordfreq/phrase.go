package wordfreq

import "strings"

// Occurrence locates one match of a phrase.
type Occurrence struct {
	// Offset is the byte offset of the match in the source text.
	Offset int `json:"offset"`
	// Sentence runs from the match through the next '.' or the end of text.
	Sentence string `json:"sentence"`
}

// FindPhrase returns every non-overlapping, case-sensitive occurrence of
// phrase in text.
func FindPhrase(text, phrase string) []Occurrence {
	out := []Occurrence{}
	if phrase == "" {
		return out
	}
	start := 0
	for start <= len(text)-len(phrase) {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			break
		}
		offset := start + idx
		end := len(text)
		if dot := strings.IndexByte(text[offset:], '.'); dot >= 0 {
			end = offset + dot + 1
		}
		out = append(out, Occurrence{Offset: offset, Sentence: text[offset:end]})
		start = offset + len(phrase)
	}
	return out
}
