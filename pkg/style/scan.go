package style

import "strings"

// quoteState tracks whether a byte-wise scan is inside a string literal.
// A fresh state is used for every physical line.
type quoteState struct {
	single   bool
	double   bool
	backtick bool
	escaped  bool
}

func (q *quoteState) inString() bool {
	return q.single || q.double || q.backtick
}

// step advances the state over c. Quotes and braces are ASCII, so scanning
// bytes is safe for UTF-8 input.
func (q *quoteState) step(c byte) {
	if q.escaped {
		q.escaped = false
		return
	}

	switch c {
	case '\\':
		q.escaped = q.inString()
	case '\'':
		if !q.double && !q.backtick {
			q.single = !q.single
		}
	case '"':
		if !q.single && !q.backtick {
			q.double = !q.double
		}
	case '`':
		if !q.single && !q.double {
			q.backtick = !q.backtick
		}
	}
}

// mapCode applies fn to every run of line outside string literals and
// copies string literals, including their quotes, unchanged.
func mapCode(line string, fn func(string) string) string {
	var (
		b     strings.Builder
		q     quoteState
		start int
	)

	b.Grow(len(line))

	for i := range len(line) {
		wasIn := q.inString()
		q.step(line[i])
		isIn := q.inString()

		switch {
		case !wasIn && isIn:
			b.WriteString(fn(line[start:i]))
			start = i
		case wasIn && !isIn:
			b.WriteString(line[start : i+1])
			start = i + 1
		}
	}

	if q.inString() {
		b.WriteString(line[start:])
	} else {
		b.WriteString(fn(line[start:]))
	}

	return b.String()
}

// braceDepth returns the net count of structural braces in line.
func braceDepth(line string) int {
	var (
		q     quoteState
		depth int
	)

	for i := range len(line) {
		c := line[i]
		q.step(c)
		if q.inString() {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
		}
	}

	return depth
}

// objectEnd returns the index just past the object literal opened at
// line[open], including a trailing ';' or ','. If the object is not closed
// on this line, len(line) is returned.
func objectEnd(line string, open int) int {
	var (
		q     quoteState
		depth int
	)

	for i := open; i < len(line); i++ {
		c := line[i]
		q.step(c)
		if q.inString() {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if i+1 < len(line) && (line[i+1] == ';' || line[i+1] == ',') {
					return i + 2
				}
				return i + 1
			}
		}
	}

	return len(line)
}
