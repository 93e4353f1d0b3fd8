package newick

import (
	"bytes"
	"unicode"
)

// Trim removes surrounding whitespace and one leading [comment] block.
// With stripSemicolon it also drops a trailing ';'.
func Trim(src []byte, stripSemicolon bool) []byte {
	t := bytes.TrimSpace(src)
	if len(t) > 0 && t[0] == '[' {
		if j := bytes.IndexByte(t, ']'); j >= 0 {
			t = bytes.TrimLeftFunc(t[j+1:], unicode.IsSpace)
		}
	}
	if stripSemicolon && len(t) > 0 && t[len(t)-1] == ';' {
		t = t[:len(t)-1]
	}
	return t
}
