package sqlengine

import "strings"

// SplitStatements splits text on ';' that are not inside a string literal,
// a quoted identifier or a comment. Empty statements are dropped.
//
// Trigger bodies (BEGIN ... END) are kept whole so their inner ';' do not
// end the CREATE TRIGGER statement.
func SplitStatements(text string) []string {
	var (
		stmts []string
		cur   strings.Builder
		quote rune
		depth int
	)

	flush := func() {
		stmt := strings.TrimSpace(cur.String())
		cur.Reset()
		if stmt != "" && !onlyComments(stmt) {
			stmts = append(stmts, stmt)
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if quote != 0 {
			cur.WriteRune(c)
			if c == quote {
				// A doubled quote is an escaped quote, not a terminator.
				if i+1 < len(runes) && runes[i+1] == quote {
					cur.WriteRune(runes[i+1])
					i++
					continue
				}
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			cur.WriteRune(c)
		case c == '[':
			quote = ']'
			cur.WriteRune(c)
		case c == '-' && i+1 < len(runes) && runes[i+1] == '-':
			for i < len(runes) && runes[i] != '\n' {
				cur.WriteRune(runes[i])
				i++
			}
			if i < len(runes) {
				cur.WriteRune(runes[i])
			}
		case c == '/' && i+1 < len(runes) && runes[i+1] == '*':
			cur.WriteString("/*")
			i += 2
			for i < len(runes) && !(runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/') {
				cur.WriteRune(runes[i])
				i++
			}
			if i < len(runes) {
				cur.WriteString("*/")
				i++
			}
		case c == ';' && depth == 0:
			flush()
		default:
			if isWordStart(runes, i) {
				word := readWord(runes, i)
				switch strings.ToUpper(word) {
				case "BEGIN":
					if inTrigger(cur.String()) {
						depth++
					}
				case "CASE":
					if depth > 0 {
						depth++
					}
				case "END":
					if depth > 0 {
						depth--
					}
				}
				cur.WriteString(word)
				i += len([]rune(word)) - 1
				continue
			}
			cur.WriteRune(c)
		}
	}
	flush()
	return stmts
}

func isWordStart(runes []rune, i int) bool {
	if !isWordRune(runes[i]) {
		return false
	}
	return i == 0 || !isWordRune(runes[i-1])
}

func readWord(runes []rune, i int) string {
	j := i
	for j < len(runes) && isWordRune(runes[j]) {
		j++
	}
	return string(runes[i:j])
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func inTrigger(stmt string) bool {
	return strings.Contains(strings.ToUpper(stmt), "TRIGGER")
}

// onlyComments reports whether stmt holds nothing but comments.
func onlyComments(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
			continue
		}
		return false
	}
	return true
}
