package recommend

import (
	"strings"

	"github.com/goccy/go-json"
)

// ParseChapters decodes a serialized chapter list. It accepts a JSON array of
// strings or a single- or double-quoted bracketed list as written by the
// catalog export. ok is false when raw is not a list of strings.
func ParseChapters(raw string) (chapters []string, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	if err := json.Unmarshal([]byte(s), &chapters); err == nil {
		return chapters, true
	}
	return parseQuotedList(s)
}

// ChaptersOrEmpty collapses a malformed chapter list to an empty one.
func ChaptersOrEmpty(raw string) []string {
	ch, ok := ParseChapters(raw)
	if !ok || ch == nil {
		return []string{}
	}
	return ch
}

func parseQuotedList(s string) ([]string, bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	body := []rune(s[1 : len(s)-1])
	out := []string{}

	i := 0
	skipSpace := func() {
		for i < len(body) && (body[i] == ' ' || body[i] == '\t' || body[i] == '\n' || body[i] == '\r') {
			i++
		}
	}

	for {
		skipSpace()
		if i == len(body) {
			return out, true
		}
		q := body[i]
		if q != '\'' && q != '"' {
			return nil, false
		}
		i++

		var sb strings.Builder
		closed := false
		for i < len(body) {
			r := body[i]
			i++
			if r == q {
				closed = true
				break
			}
			if r == '\\' && i < len(body) {
				esc := body[i]
				i++
				switch esc {
				case 'n':
					sb.WriteRune('\n')
				case 't':
					sb.WriteRune('\t')
				case '\\', '\'', '"':
					sb.WriteRune(esc)
				default:
					sb.WriteRune('\\')
					sb.WriteRune(esc)
				}
				continue
			}
			sb.WriteRune(r)
		}
		if !closed {
			return nil, false
		}
		out = append(out, sb.String())

		skipSpace()
		if i == len(body) {
			return out, true
		}
		if body[i] != ',' {
			return nil, false
		}
		i++
	}
}
