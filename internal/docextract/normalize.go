package docextract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var spaceReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u00a0", " ",
	"\u202f", " ",
	"\u200b", "",
	"\ufeff", "",
)

// Normalize composes Vietnamese diacritics (NFC), unifies line endings and
// non-breaking spaces, trims trailing blanks and squeezes blank-line runs.
func Normalize(text string) string {
	text = norm.NFC.String(spaceReplacer.Replace(text))

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
