package editor

import "strings"

// Complete returns the candidates starting with prefix, in input order.
// An empty prefix matches nothing.
func Complete(prefix string, candidates []string) []string {
	if prefix == "" {
		return nil
	}
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) && c != prefix {
			out = append(out, c)
		}
	}
	return out
}

// AutoComplete extends the word before the cursor with the longest prefix
// shared by every matching candidate and returns the matches. The buffer is
// unchanged when nothing matches.
func (b *Buffer) AutoComplete(candidates []string) []string {
	word := b.WordBefore()
	matches := Complete(word, candidates)
	if len(matches) == 0 {
		return nil
	}
	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefix(common, m)
	}
	if len(common) > len(word) {
		b.Insert(common[len(word):])
	}
	return matches
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
