package newick

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// nameStops ends an unquoted name or an edge length.
const nameStops = ",;:()["

const ottMarker = "_ott"

// Node is one node record yielded by a Scanner.
//
// Start and End delimit the node's text: for a leaf, its label and edge
// length; for an interior node, everything from its open parenthesis to
// the end of its edge length. The terminating semicolon is never part of
// a span.
type Node struct {
	// Label is the full name, with quotes removed.
	Label string
	// Taxon and Ott split Label at the first "_ott".
	Taxon string
	Ott   string

	Length    float64
	HasLength bool

	// Comment holds the text of [comment] blocks after the label or the
	// edge length, without brackets. Several blocks are joined by a space.
	Comment string

	Start     int
	End       int
	NameStart int

	// Depth counts the open parentheses enclosing the node.
	Depth int
	Leaf  bool
}

// ID returns the ott when present, otherwise the taxon.
func (n *Node) ID() string {
	if n.Ott != "" {
		return n.Ott
	}
	return n.Taxon
}

// Matches reports whether id names the node by taxon or ott.
func (n *Node) Matches(ids map[string]bool) bool {
	return (n.Taxon != "" && ids[n.Taxon]) || (n.Ott != "" && ids[n.Ott])
}

// Scanner yields the nodes of one Newick tree in post-order. It can only
// move forward; scanning again requires a new Scanner.
//
//	s := newick.NewScanner(src)
//	for s.Next() {
//		n := s.Node()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type Scanner struct {
	src     []byte
	i       int
	stack   []int
	closed  bool
	started bool
	done    bool
	node    Node
	err     error
}

func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Node returns the record found by the last call to Next.
func (s *Scanner) Node() Node {
	return s.node
}

// Err returns the first syntax error encountered, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the scan position.
func (s *Scanner) Offset() int {
	return s.i
}

func (s *Scanner) fail(msg string) bool {
	s.err = newSyntaxError(s.src, s.i, msg)
	s.done = true
	return false
}

// Next advances to the next node. It returns false at the end of the
// tree or on error.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	src := s.src
	if s.started {
		if len(s.stack) == 0 {
			s.done = true
			if s.i >= len(src) || src[s.i] != ';' {
				return s.fail("expected a semicolon at the end of the tree")
			}
			return false
		}
		if s.i >= len(src) {
			return s.fail("expected ',' or ')'")
		}
		s.closed = src[s.i] == ')'
		if src[s.i] == ',' {
			s.i++
		} else if !s.closed {
			return s.fail("expected ',' or ')'")
		}
	}
	s.started = true

	for !s.closed && s.i < len(src) && src[s.i] == '(' {
		s.stack = append(s.stack, s.i)
		s.i++
	}
	if s.i >= len(src) {
		return s.fail("unexpected end of tree")
	}

	start := s.i
	if s.closed {
		s.i++
		start = s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
	}

	n := Node{
		Start:     start,
		NameStart: s.i,
		Leaf:      !s.closed,
	}

	if s.i < len(src) && src[s.i] == '\'' {
		j := bytes.IndexByte(src[s.i+1:], '\'')
		if j < 0 {
			return s.fail("unterminated quoted name")
		}
		n.Label = string(src[s.i+1 : s.i+1+j])
		s.i += j + 2
	} else {
		j := bytes.IndexAny(src[s.i:], nameStops)
		if j < 0 {
			j = len(src) - s.i
		}
		n.Label = string(src[s.i : s.i+j])
		s.i += j
	}
	if !s.comment(&n) {
		return false
	}

	if s.i < len(src) && src[s.i] == ':' {
		s.i++
		j := bytes.IndexAny(src[s.i:], nameStops)
		if j < 0 {
			j = len(src) - s.i
		}
		lit := string(src[s.i : s.i+j])
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return s.fail(fmt.Sprintf("'%s' is not a valid edge length", lit))
		}
		n.Length, n.HasLength = v, true
		s.i += j
		if !s.comment(&n) {
			return false
		}
	}

	n.Taxon = n.Label
	if k := indexOtt(n.Label); k >= 0 {
		n.Taxon = n.Label[:k]
		n.Ott = n.Label[k+len(ottMarker):]
	}
	n.End = s.i
	n.Depth = len(s.stack)
	s.node = n
	return true
}

// comment consumes [...] blocks at the scan position into n.
func (s *Scanner) comment(n *Node) bool {
	for s.i < len(s.src) && s.src[s.i] == '[' {
		j := bytes.IndexByte(s.src[s.i:], ']')
		if j < 0 {
			return s.fail("unterminated comment")
		}
		if n.Comment != "" {
			n.Comment += " "
		}
		n.Comment += string(s.src[s.i+1 : s.i+j])
		s.i += j + 1
	}
	return true
}

func indexOtt(label string) int {
	return strings.Index(label, ottMarker)
}

// Nodes scans src completely and returns every node in post-order.
func Nodes(src []byte) ([]Node, error) {
	var res []Node
	s := NewScanner(src)
	for s.Next() {
		res = append(res, s.Node())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
