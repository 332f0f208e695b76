package editor

// Segment is a visual row of a soft-wrapped line: runes [Start, End).
type Segment struct {
	Start, End int
}

// Wrap splits line into rows of at most cols display columns, with tabs
// expanded to tabSize. Rows break after the last space that fits, or
// mid-word when a word is longer than a row. An empty line is one empty
// segment. cols <= 0 disables wrapping.
func Wrap(line []rune, cols, tabSize int) []Segment {
	if cols <= 0 || len(line) == 0 {
		return []Segment{{0, len(line)}}
	}
	tabSize = max(tabSize, 1)
	var segs []Segment
	start, width, lastSpace := 0, 0, -1
	for i := 0; i < len(line); i++ {
		w := 1
		if line[i] == '\t' {
			w = tabSize - width%tabSize
		}
		if width+w > cols && i > start {
			end := i
			if lastSpace >= start {
				end = lastSpace + 1
			}
			segs = append(segs, Segment{start, end})
			start = end
			width = DisplayWidth(line[start:i], tabSize)
			lastSpace = -1
			i--
			continue
		}
		if line[i] == ' ' || line[i] == '\t' {
			lastSpace = i
		}
		width += w
	}
	return append(segs, Segment{start, len(line)})
}

// DisplayWidth returns the columns rs occupies with tabs expanded.
func DisplayWidth(rs []rune, tabSize int) int {
	tabSize = max(tabSize, 1)
	w := 0
	for _, r := range rs {
		if r == '\t' {
			w += tabSize - w%tabSize
		} else {
			w++
		}
	}
	return w
}
