package eventlog

import (
	"strings"

	internalstrings "github.com/amonks/tasknest/internal/strings"
	"github.com/muesli/reflow/wordwrap"
)

const (
	lineWidth      = 80
	documentIndent = 4
)

// IndentBlock prefixes each line with spaces.
func IndentBlock(value string, spaces int) string {
	return internalstrings.IndentBlock(value, spaces)
}

// ReflowIndentedText wraps text to width, keeping each line group's
// indentation relative to baseIndent.
func ReflowIndentedText(value string, width int, baseIndent int) string {
	value = internalstrings.NormalizeNewlines(value)
	value = strings.TrimRight(value, "\n")
	if strings.TrimSpace(value) == "" {
		return IndentBlock("-", baseIndent)
	}

	lines := strings.Split(value, "\n")
	var out []string
	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			out = append(out, strings.Repeat(" ", baseIndent))
			i++
			continue
		}
		indent := leadingSpaces(line)
		var parts []string
		for i < len(lines) {
			line = lines[i]
			if strings.TrimSpace(line) == "" || leadingSpaces(line) != indent {
				break
			}
			parts = append(parts, strings.TrimSpace(line[indent:]))
			i++
		}
		normalized := internalstrings.NormalizeWhitespace(strings.Join(parts, " "))
		wrapWidth := max(width-baseIndent-indent, 1)
		wrapped := IndentBlock(wordwrap.String(normalized, wrapWidth), baseIndent+indent)
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	return strings.Join(out, "\n")
}

func leadingSpaces(value string) int {
	count := 0
	for _, char := range value {
		if char != ' ' {
			break
		}
		count++
	}
	return count
}
