package style

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once, read-only
var (
	elseBlockPattern  = regexp.MustCompile(`\}\s*else\s*\{`)
	closeElsePattern  = regexp.MustCompile(`\}\s*else`)
	elseOpenPattern   = regexp.MustCompile(`else\s*\{`)
	returnTypePattern = regexp.MustCompile(`\)\s*:\s*([A-Za-z_$][A-Za-z0-9_$<>]*)`)
)

// Preprocess splits text into logical lines: one brace, statement, import
// statement or comment per entry. Lines are trimmed and empty lines are
// dropped.
func Preprocess(text string, mode Mode) []string {
	physical := strings.Split(text, "\n")
	lines := make([]string, 0, len(physical))

	for i := 0; i < len(physical); i++ {
		line := strings.TrimSpace(physical[i])

		if startsImport(line) {
			stmt, consumed := collectImport(physical, i)
			lines = append(lines, stmt)
			i += consumed - 1
			continue
		}

		if IsComment(line) {
			lines = append(lines, line)
			continue
		}

		line = mapCode(line, splitElse)
		if mode == ModeTypeScript {
			line = mapCode(line, spaceReturnType)
		}

		lines = append(lines, splitBraces(line)...)
	}

	return lines
}

func startsImport(line string) bool {
	return strings.HasPrefix(line, "import") || strings.HasPrefix(line, "require")
}

// collectImport joins the import statement starting at physical[start] into
// one line. It returns the statement and the number of physical lines used.
// A following line that begins a new import, or an empty line, ends the
// statement without being consumed.
func collectImport(physical []string, start int) (string, int) {
	var (
		parts    []string
		inString bool
		quote    byte
		quotes   int
	)

	for i := start; i < len(physical); i++ {
		line := strings.TrimSpace(physical[i])
		if i > start && (line == "" || startsImport(line)) {
			break
		}

		for j := range len(line) {
			c := line[j]
			switch {
			case !inString && (c == '\'' || c == '"'):
				inString, quote = true, c
				quotes++
			case inString && c == quote:
				inString = false
				quotes++
			}
		}

		parts = append(parts, line)

		if (!inString && strings.Contains(line, ";")) || quotes >= 2 {
			break
		}
	}

	return strings.Join(parts, " "), len(parts)
}

// splitElse moves else keywords and their surrounding braces onto their
// own lines so brace splitting sees them in isolation.
func splitElse(code string) string {
	code = elseBlockPattern.ReplaceAllString(code, "}\nelse\n{")
	code = closeElsePattern.ReplaceAllString(code, "}\nelse")
	return elseOpenPattern.ReplaceAllString(code, "else\n{")
}

// spaceReturnType rewrites "):T" as ") : T".
func spaceReturnType(code string) string {
	return returnTypePattern.ReplaceAllString(code, ") : ${1}")
}

// splitBraces isolates structural braces onto their own lines.
//
// Braces inside string literals are content. "{{" opens a template
// placeholder and is kept literal together with the "}}" closing it. A
// return statement followed by an object literal is emitted as one line
// up to the object's closing brace.
func splitBraces(line string) []string {
	if IsReturnAnonymousObject(line) {
		return compact([]string{line})
	}

	var (
		out          []string
		cur          strings.Builder
		q            quoteState
		placeholders int
	)

	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
	}
	alone := func(s string) {
		flush()
		out = append(out, s)
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		q.step(c)

		if c == '\n' {
			flush()
			continue
		}
		if q.inString() || (c != '{' && c != '}') {
			cur.WriteByte(c)
			continue
		}

		var next byte
		if i+1 < len(line) {
			next = line[i+1]
		}

		switch {
		case c == '{' && next == '{':
			placeholders++
			cur.WriteString("{{")
			i++
		case c == '{' && strings.TrimSpace(cur.String()) == "return":
			end := objectEnd(line, i)
			cur.WriteString(line[i:end])
			flush()
			i = end - 1
		case c == '{':
			alone("{")
		case next == '}' && placeholders > 0:
			placeholders--
			cur.WriteString("}}")
			i++
		case next == ';' || next == ',':
			alone(line[i : i+2])
			i++
		default:
			alone("}")
		}
	}

	flush()

	return compact(out)
}

// compact trims fragments, splits any that still hold newlines and drops
// the empty ones.
func compact(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		for _, part := range strings.Split(frag, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
