package effects

import "strings"

// textEscaper rewrites every character the ffmpeg filter parser treats as
// structure. Escaping happens centrally here so arbitrary user text can never
// terminate the drawtext argument or splice extra filters into the graph.
// The escaped text is always embedded in a single-quoted option value, and
// the filter tokenizer performs no escaping inside quotes, so a quote must
// close the section, emit an escaped quote, and reopen. Backslash must come
// first.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `'\''`,
	`:`, `\:`,
	`%`, `\%`,
	`,`, `\,`,
	`;`, `\;`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`=`, `\=`,
)

// EscapeText escapes subtitle text for use inside a drawtext filter argument.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// WrapText word-wraps text to lines of at most maxChars characters. Words
// longer than a full line are hard-split rather than overflowing the frame.
func WrapText(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
	}

	lineLen := 0
	for _, word := range words {
		runes := []rune(word)
		for len(runes) > maxChars {
			flush()
			lineLen = 0
			lines = append(lines, string(runes[:maxChars]))
			runes = runes[maxChars:]
		}
		if len(runes) == 0 {
			continue
		}
		switch {
		case current.Len() == 0:
			current.WriteString(string(runes))
			lineLen = len(runes)
		case lineLen+1+len(runes) <= maxChars:
			current.WriteByte(' ')
			current.WriteString(string(runes))
			lineLen += 1 + len(runes)
		default:
			flush()
			current.WriteString(string(runes))
			lineLen = len(runes)
		}
	}
	flush()

	return lines
}
