// Package ultrametric checks and repairs trees whose root-to-leaf path
// lengths should all be equal.
//
// The root's own edge length never counts. Subtrees rooted at a node
// whose name ends in '@' are unexpanded inclusions and are skipped, as
// are leaves with no edge length. An interior edge with no length counts
// as zero, which can hide a real mismatch; WithStrictLengths turns it
// into an error instead.
package ultrametric

import (
	"fmt"
	"math"
	"strings"

	"github.com/onezoom/oztree/ir"
)

type checkOpts struct {
	strict bool
}

type CheckOption func(*checkOpts)

// WithStrictLengths makes a missing interior edge length an error.
func WithStrictLengths() CheckOption {
	return func(o *checkOpts) { o.strict = true }
}

// LeafAge is the root-to-leaf length of one leaf.
type LeafAge struct {
	Leaf    string
	Age     float64
	Lengths []float64
}

// Result is the outcome of Check.
type Result struct {
	Ultrametric bool
	// First is the leaf every other is compared to; Mismatch is the first
	// leaf that differs from it.
	First    *LeafAge
	Mismatch *LeafAge
	// Leaves lists every leaf checked, in tree order.
	Leaves []LeafAge
	// Counts maps each age to how many leaves have it.
	Counts map[float64]int
}

// Message describes the first mismatch, or "" for an ultrametric tree.
func (r *Result) Message() string {
	if r.Mismatch == nil {
		return ""
	}
	return fmt.Sprintf("Not ultrametric! %s has age %v, but %s has age %v",
		r.Mismatch.Leaf, r.Mismatch.Age, r.First.Leaf, r.First.Age)
}

// Check sums the edge lengths from root to every leaf and compares them,
// rounded to 12 decimals.
//
// An interior node without a length counts as 0 unless WithStrictLengths
// is given. A leaf without a length is left out of the comparison
// rather than counted as 0.
func Check(root *ir.Node, opts ...CheckOption) (*Result, error) {
	o := &checkOpts{}
	for _, f := range opts {
		f(o)
	}
	res := &Result{Counts: map[float64]int{}}
	var lengths []float64
	var walk func(n *ir.Node) error
	walk = func(n *ir.Node) error {
		if skip(n) {
			return nil
		}
		if n.IsLeaf() {
			if n.Parent != nil && !n.HasLength {
				return nil
			}
			sum := 0.0
			for _, l := range lengths {
				sum += l
			}
			la := LeafAge{
				Leaf:    DisplayName(n),
				Age:     round(sum, 12),
				Lengths: append([]float64(nil), lengths...),
			}
			switch {
			case res.First == nil:
				res.First = &la
			case res.Mismatch == nil && la.Age != res.First.Age:
				res.Mismatch = &la
			}
			res.Leaves = append(res.Leaves, la)
			res.Counts[la.Age]++
			return nil
		}
		for _, c := range n.Children {
			if !c.HasLength && !c.IsLeaf() && o.strict {
				return fmt.Errorf("%w: %s", ErrMissingLength, c.Path())
			}
			lengths = append(lengths, c.Length)
			if err := walk(c); err != nil {
				return err
			}
			lengths = lengths[:len(lengths)-1]
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	res.Ultrametric = res.Mismatch == nil
	return res, nil
}

// Fix rounds every edge length to 6 decimals and then stretches or
// shrinks each leaf edge so the leaf sits at age expected. A leaf further
// than maxDelta from expected fails with a *ToleranceError.
func Fix(root *ir.Node, expected, maxDelta float64) error {
	var walk func(n *ir.Node, age float64) error
	walk = func(n *ir.Node, age float64) error {
		if skip(n) {
			return nil
		}
		if n.IsLeaf() {
			if !n.HasLength || age == expected {
				return nil
			}
			if abs(age-expected) > maxDelta {
				return &ToleranceError{Leaf: DisplayName(n), Age: age, Expected: expected, Max: maxDelta}
			}
			n.Length = round(n.Length+expected-age, 6)
			return nil
		}
		for _, c := range n.Children {
			if c.HasLength {
				c.Length = round(c.Length, 6)
			}
			if err := walk(c, age+c.Length); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, 0)
}

func skip(n *ir.Node) bool {
	return strings.HasSuffix(n.Name, "@")
}

// DisplayName names n for reports. Unnamed leaves are usually extinct
// prop-up nodes and take their parent's name.
func DisplayName(n *ir.Node) string {
	switch {
	case n.Name != "":
		return n.Name
	case n.Parent == nil:
		return "Root"
	case !n.IsLeaf():
		return "(Unnamed node)"
	default:
		return n.Parent.Name + " (Extinct)"
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
