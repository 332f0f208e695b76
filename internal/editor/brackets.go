package editor

var pairs = map[rune]rune{'(': ')', '[': ']', '{': '}'}

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

// MatchBracket finds the bracket adjacent to the cursor (the rune under it
// first, then the one before) and its partner. ok is false when there is no
// adjacent bracket or it is unbalanced. Brackets inside strings and
// comments are not skipped.
func (b *Buffer) MatchBracket() (at, match Pos, ok bool) {
	c := b.cursor
	line := b.lines[c.Line]
	for _, col := range []int{c.Col, c.Col - 1} {
		if col < 0 || col >= len(line) {
			continue
		}
		r := line[col]
		at = Pos{Line: c.Line, Col: col}
		if partner, isOpen := pairs[r]; isOpen {
			match, ok = b.scan(at, r, partner, 1)
			return at, match, ok
		}
		if partner, isClose := closers[r]; isClose {
			match, ok = b.scan(at, r, partner, -1)
			return at, match, ok
		}
	}
	return Pos{}, Pos{}, false
}

// scan walks from start in direction dir counting nesting of self until
// the partner at depth zero.
func (b *Buffer) scan(start Pos, self, partner rune, dir int) (Pos, bool) {
	depth := 0
	p := start
	for {
		line := b.lines[p.Line]
		for p.Col >= 0 && p.Col < len(line) {
			switch line[p.Col] {
			case self:
				depth++
			case partner:
				depth--
				if depth == 0 {
					return p, true
				}
			}
			p.Col += dir
		}
		p.Line += dir
		if p.Line < 0 || p.Line >= len(b.lines) {
			return Pos{}, false
		}
		if dir > 0 {
			p.Col = 0
		} else {
			p.Col = len(b.lines[p.Line]) - 1
		}
	}
}
