package tomledit

import "strings"

// parseHeader recognizes [table] and [[array.of.tables]] lines.
// The input must already be whitespace-trimmed.
func parseHeader(trimmed string) (name string, array bool, ok bool) {
	if !strings.HasPrefix(trimmed, "[") {
		return "", false, false
	}

	body := trimmed[1:]
	close := "]"
	if strings.HasPrefix(body, "[") {
		body = body[1:]
		close = "]]"
		array = true
	}

	end := strings.Index(body, close)
	if end < 0 {
		return "", false, false
	}
	rest := strings.TrimSpace(body[end+len(close):])
	if rest != "" && !strings.HasPrefix(rest, "#") {
		return "", false, false
	}

	segments, ok := splitKey(body[:end])
	if !ok {
		return "", false, false
	}
	return strings.Join(segments, "."), array, true
}

// parseAssignmentKey recognizes a `key = value` line, returning the dotted
// key and the column where the value text begins.
func parseAssignmentKey(line string) (key string, valueCol int, ok bool) {
	eq := findAssignEquals(line)
	if eq < 0 {
		return "", 0, false
	}

	segments, ok := splitKey(line[:eq])
	if !ok || len(segments) == 0 {
		return "", 0, false
	}

	col := eq + 1
	for col < len(line) && (line[col] == ' ' || line[col] == '\t') {
		col++
	}
	return strings.Join(segments, "."), col, true
}

// findAssignEquals locates the key/value separator, skipping '=' inside
// quoted key segments.
func findAssignEquals(line string) int {
	inQuote := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inQuote != 0 {
			if c == '\\' && inQuote == '"' {
				i++
				continue
			}
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
		case '=':
			return i
		case '#':
			return -1
		}
	}
	return -1
}

// splitKey splits a dotted TOML key into segments, honoring quoted segments.
func splitKey(s string) ([]string, bool) {
	var segments []string
	i := 0
	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			return nil, false
		}

		var seg string
		switch s[i] {
		case '"':
			end := i + 1
			var b strings.Builder
			for end < len(s) && s[end] != '"' {
				if s[end] == '\\' && end+1 < len(s) {
					end++
				}
				b.WriteByte(s[end])
				end++
			}
			if end >= len(s) {
				return nil, false
			}
			seg = b.String()
			i = end + 1
		case '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return nil, false
			}
			seg = s[i+1 : i+1+end]
			i = i + 2 + end
		default:
			end := i
			for end < len(s) && isBareKeyChar(s[end]) {
				end++
			}
			if end == i {
				return nil, false
			}
			seg = s[i:end]
			i = end
		}
		segments = append(segments, seg)

		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			return segments, true
		}
		if s[i] != '.' {
			return nil, false
		}
		i++
	}
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '-'
}

// scanValue finds the extent of the value starting at lines[li][ci],
// returning the line and column just past it. Strings, arrays, and inline
// tables may span lines; scanning is lenient and never fails, falling back
// to end-of-line for anything malformed.
func scanValue(lines []string, li, ci int) (int, int) {
	line := lines[li]
	for ci < len(line) && (line[ci] == ' ' || line[ci] == '\t') {
		ci++
	}
	if ci >= len(line) {
		return li, len(line)
	}

	switch line[ci] {
	case '"':
		if strings.HasPrefix(line[ci:], `"""`) {
			return scanToDelim(lines, li, ci+3, `"""`, true)
		}
		return li, scanSingleLineString(line, ci+1, '"', true)
	case '\'':
		if strings.HasPrefix(line[ci:], "'''") {
			return scanToDelim(lines, li, ci+3, "'''", false)
		}
		return li, scanSingleLineString(line, ci+1, '\'', false)
	case '[':
		return scanBalanced(lines, li, ci, '[', ']')
	case '{':
		return scanBalanced(lines, li, ci, '{', '}')
	}

	// Bare value: runs to the comment or end of line, trailing space trimmed.
	end := len(line)
	if hash := strings.IndexByte(line[ci:], '#'); hash >= 0 {
		end = ci + hash
	}
	for end > ci && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	return li, end
}

// scanSingleLineString returns the column past the closing quote.
func scanSingleLineString(line string, ci int, quote byte, escapes bool) int {
	for i := ci; i < len(line); i++ {
		if escapes && line[i] == '\\' {
			i++
			continue
		}
		if line[i] == quote {
			return i + 1
		}
	}
	return len(line)
}

// scanToDelim searches forward, possibly across lines, for a closing
// multi-line string delimiter.
func scanToDelim(lines []string, li, ci int, delim string, escapes bool) (int, int) {
	for ; li < len(lines); li, ci = li+1, 0 {
		line := lines[li]
		for i := ci; i+len(delim) <= len(line); i++ {
			if escapes && line[i] == '\\' {
				i++
				continue
			}
			if line[i:i+len(delim)] == delim {
				// A longer quote run belongs to the string body.
				end := i + len(delim)
				for end < len(line) && line[end] == delim[0] {
					end++
				}
				return li, end
			}
		}
	}
	return len(lines) - 1, len(lines[len(lines)-1])
}

// scanBalanced consumes a bracketed value, skipping over string contents.
func scanBalanced(lines []string, li, ci int, open, close byte) (int, int) {
	depth := 0
	for ; li < len(lines); li, ci = li+1, 0 {
		line := lines[li]
		for i := ci; i < len(line); i++ {
			switch line[i] {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return li, i + 1
				}
			case '"':
				if strings.HasPrefix(line[i:], `"""`) {
					li, i = scanToDelim(lines, li, i+3, `"""`, true)
					line = lines[li]
					i--
					continue
				}
				i = scanSingleLineString(line, i+1, '"', true) - 1
			case '\'':
				if strings.HasPrefix(line[i:], "'''") {
					li, i = scanToDelim(lines, li, i+3, "'''", false)
					line = lines[li]
					i--
					continue
				}
				i = scanSingleLineString(line, i+1, '\'', false) - 1
			case '#':
				// Comment inside a multi-line array.
				i = len(line)
			}
			if i >= len(line) {
				break
			}
		}
	}
	last := len(lines) - 1
	return last, len(lines[last])
}
