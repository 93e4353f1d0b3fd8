// Package encode writes in-memory trees as Newick text.
package encode

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/onezoom/oztree/ir"
)

// quoteIf lists the bytes that force a label into single quotes.
const quoteIf = " \t\n,;:()[]'"

type encState struct {
	dates bool
	prec  int
	w     *bufio.Writer
}

// Encode writes root and its descendants to w, followed by ';' and a
// newline.
func Encode(root *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &encState{prec: -1, w: bufio.NewWriter(w)}
	for _, opt := range opts {
		opt(es)
	}
	es.node(root)
	es.w.WriteString(";\n")
	return es.w.Flush()
}

// String returns the Newick text of root.
func String(root *ir.Node, opts ...EncodeOption) string {
	var buf bytes.Buffer
	Encode(root, &buf, opts...)
	return buf.String()
}

func (es *encState) node(n *ir.Node) {
	if len(n.Children) > 0 {
		es.w.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				es.w.WriteByte(',')
			}
			es.node(c)
		}
		es.w.WriteByte(')')
	}
	es.w.WriteString(Label(n.Name))
	if n.HasLength {
		es.w.WriteByte(':')
		es.w.WriteString(es.float(n.Length))
	}
	if es.dates && n.Date != nil {
		es.w.WriteString("[&&NHX:date=")
		es.w.WriteString(es.float(*n.Date))
		es.w.WriteByte(']')
	}
}

func (es *encState) float(v float64) string {
	s := strconv.FormatFloat(v, 'f', es.prec, 64)
	if es.prec > 0 && strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// Label quotes name when it holds a Newick delimiter. Embedded single
// quotes are dropped since the scanner does not unescape them.
func Label(name string) string {
	if !strings.ContainsAny(name, quoteIf) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "") + "'"
}
