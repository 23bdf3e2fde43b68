package strip

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The rules below are a line-local heuristic, not a lexer. A marker preceded
// by whitespace inside a string literal is treated as a comment, and block
// comments are left alone.

const marker = "//"

// LineStats counts what the transformer did to a run of lines.
type LineStats struct {
	Lines     int `json:"lines"`
	Dropped   int `json:"dropped"`
	Truncated int `json:"truncated"`
	Changed   int `json:"changed"`
}

func (ls *LineStats) add(o LineStats) {
	ls.Lines += o.Lines
	ls.Dropped += o.Dropped
	ls.Truncated += o.Truncated
	ls.Changed += o.Changed
}

type lineAction int

const (
	keepLine lineAction = iota
	dropLine
	truncateLine
)

// isSpace also treats the ASCII information separators as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// StripLine rewrites a single line. ok is false when the whole line is a
// comment and must be dropped from the output.
func StripLine(line string) (out string, ok bool) {
	out, action := rewriteLine(line)
	return out, action != dropLine
}

func rewriteLine(line string) (string, lineAction) {
	if isFullLineComment(line) {
		return "", dropLine
	}
	action := keepLine
	if i := trailingCommentStart(line); i >= 0 {
		line = line[:i]
		action = truncateLine
	}
	return strings.TrimRightFunc(line, isSpace), action
}

func isFullLineComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, isSpace), marker)
}

// trailingCommentStart returns the byte offset of the leftmost whitespace
// character that is directly followed by the marker and not directly
// preceded by a colon, or -1. The colon guard keeps "scheme: //host" style
// text intact; "http://" has no whitespace before the marker at all.
func trailingCommentStart(line string) int {
	prev := utf8.RuneError
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if isSpace(r) && prev != ':' && strings.HasPrefix(line[i+size:], marker) {
			return i
		}
		prev = r
		i += size
	}
	return -1
}

// StripLines applies StripLine to every line, in order, without carrying any
// state between lines. Dropped lines are omitted from the result.
func StripLines(lines []string) ([]string, LineStats) {
	stats := LineStats{Lines: len(lines)}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		rewritten, action := rewriteLine(line)
		switch action {
		case dropLine:
			stats.Dropped++
			stats.Changed++
			continue
		case truncateLine:
			stats.Truncated++
		}
		if rewritten != line {
			stats.Changed++
		}
		out = append(out, rewritten)
	}
	return out, stats
}

// StripText transforms the full text of a file. Every surviving line ends
// with a single "\n", including a final line that had no terminator.
func StripText(text string) (string, LineStats) {
	lines, stats := StripLines(splitLines(text))

	var sb strings.Builder
	sb.Grow(len(text))
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), stats
}

// splitLines splits on "\n", "\r\n" and lone "\r". Terminators are not part
// of the returned lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
