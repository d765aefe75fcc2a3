// Package emit formats a raw emitted tape program for output: hard-wrapping
// it at a fixed column width and writing it to disk.
package emit

import (
	"os"
	"strings"
)

// CodeWidth is the fixed column width the emitted program is wrapped to.
const CodeWidth = 80

// Wrap hard-wraps code at CodeWidth columns by inserting '\n' separators,
// and appends a terminal newline if one is not already present.
func Wrap(code string) string {
	var b strings.Builder
	b.Grow(len(code) + len(code)/CodeWidth + 1)

	for i, ch := range code {
		if i != 0 && i%CodeWidth == 0 {
			b.WriteByte('\n')
		}
		b.WriteRune(ch)
	}

	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// WriteFile wraps code and writes it to path, (re)creating and truncating
// the file in one pass.
func WriteFile(path string, code string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(Wrap(code))
	return err
}
