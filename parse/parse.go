// Package parse builds an in-memory tree from Newick text.
package parse

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/onezoom/oztree/ir"
	"github.com/onezoom/oztree/newick"
)

// Parse builds the tree of src. A leading [comment] and surrounding
// whitespace are ignored; the text must end with ';'.
func Parse(src []byte) (*ir.Node, error) {
	src = newick.Trim(src, false)
	// pending[d] holds the finished children of the node being built at
	// depth d-1.
	var pending [][]*ir.Node
	var root *ir.Node
	s := newick.NewScanner(src)
	for s.Next() {
		rec := s.Node()
		n := &ir.Node{
			Name:      rec.Label,
			Length:    rec.Length,
			HasLength: rec.HasLength,
			Date:      nhxDate(rec.Comment),
		}
		for len(pending) <= rec.Depth+1 {
			pending = append(pending, nil)
		}
		if !rec.Leaf {
			for _, c := range pending[rec.Depth+1] {
				n.AddChild(c)
			}
			pending[rec.Depth+1] = nil
		}
		if rec.Depth == 0 {
			root = n
			continue
		}
		pending[rec.Depth] = append(pending[rec.Depth], n)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no tree", ErrParse)
	}
	return root, nil
}

// nhxDate returns the date of an [&&NHX:date=x] annotation, or nil.
func nhxDate(comment string) *float64 {
	rest, ok := strings.CutPrefix(comment, "&&NHX")
	if !ok {
		return nil
	}
	for _, kv := range strings.Split(rest, ":") {
		v, ok := strings.CutPrefix(kv, "date=")
		if !ok {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

// File parses the tree stored at path.
func File(path string) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
