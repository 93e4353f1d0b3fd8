package newick

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"
)

// a label, quoted or not, with an optional edge length
var labelRe = regexp.MustCompile(`^(?:'[^']*'|[^(),;\[]+)(?::[0-9.]+)?`)

// Format writes src with one node per line, indenting each nesting level
// by indent spaces. A [comment] directly after a label is kept on the
// label's line.
//
//	(A:1,(B:2,C:2)D:1)E;
//
// becomes
//
//	(
//	  A:1,
//	  (
//	    B:2,
//	    C:2
//	  )D:1
//	)E;
func Format(src []byte, w io.Writer, indent int) error {
	t := Trim(src, false)
	bw := bufio.NewWriter(w)
	pad := strings.Repeat(" ", max(indent, 0))
	i, depth := 0, 0
	for i < len(t) {
		at := i
		if t[i] == '(' {
			i++
			bw.WriteString(strings.Repeat(pad, depth))
			bw.WriteString("(\n")
			depth++
			continue
		}
		closed := t[i] == ')'
		if closed {
			i++
			depth--
			if depth < 0 {
				return newSyntaxError(t, at, "unbalanced ')'")
			}
			bw.WriteString("\n")
			bw.WriteString(strings.Repeat(pad, depth))
			bw.WriteString(")")
		}
		if m := labelRe.FindIndex(t[i:]); m != nil {
			if !closed {
				bw.WriteString(strings.Repeat(pad, depth))
			}
			bw.Write(t[i : i+m[1]])
			i += m[1]
			if i < len(t) && t[i] == '[' {
				j := bytes.IndexByte(t[i:], ']')
				if j < 0 {
					return newSyntaxError(t, i, "unterminated comment")
				}
				bw.Write(t[i : i+j+1])
				i += j + 1
			}
		}
		if i < len(t) && t[i] == ',' {
			bw.WriteString(",\n")
			i++
		}
		if i < len(t) && t[i] == ';' {
			bw.WriteString(";\n")
			break
		}
		if i == at {
			return newSyntaxError(t, i, "unexpected character")
		}
	}
	return bw.Flush()
}
