package dating

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/onezoom/oztree/debug"
	"github.com/onezoom/oztree/ir"
)

const (
	DefaultMix  = 0.25
	DefaultBias = 0.0
)

type imputeOpts struct {
	mix    float64
	bias   float64
	logger *slog.Logger
}

type ImputeOption func(*imputeOpts)

// WithMix weights the longest-path solution against the shortest-path
// one: age = mix*long + (1-mix)*short.
func WithMix(l float64) ImputeOption {
	return func(o *imputeOpts) { o.mix = l }
}

// WithBias spaces interpolated ages along exp(m*x) instead of evenly.
// Positive m pushes them towards the root, negative towards the tips.
func WithBias(m float64) ImputeOption {
	return func(o *imputeOpts) { o.bias = m }
}

func WithLogger(l *slog.Logger) ImputeOption {
	return func(o *imputeOpts) { o.logger = l }
}

// pathLabel is the oldest age beneath a node and the number of edges
// to it.
type pathLabel struct {
	Age   float64 `json:"age"`
	Edges int     `json:"edges"`
}

// older orders labels by age then edge count, as the longest path wants.
func older(a, b pathLabel) bool {
	if a.Age != b.Age {
		return a.Age > b.Age
	}
	return a.Edges > b.Edges
}

// olderShort orders labels by age then fewest edges.
func olderShort(a, b pathLabel) bool {
	if a.Age != b.Age {
		return a.Age > b.Age
	}
	return a.Edges < b.Edges
}

type imputer struct {
	imputeOpts
	long  map[*ir.Node]pathLabel
	short map[*ir.Node]pathLabel
}

// Impute dates every undated node of root. The root must be dated.
// Undated leaves are taken to be 0, except inclusion tokens which keep
// no date.
func Impute(root *ir.Node, opts ...ImputeOption) error {
	im := &imputer{
		imputeOpts: imputeOpts{mix: DefaultMix, bias: DefaultBias, logger: slog.Default()},
		long:       map[*ir.Node]pathLabel{},
		short:      map[*ir.Node]pathLabel{},
	}
	for _, f := range opts {
		f(&im.imputeOpts)
	}
	if root.Date == nil {
		return fmt.Errorf("%w: %s", ErrUndatedRoot, root.Name)
	}
	im.label(root)
	if debug.Dates() {
		dump := map[string][2]pathLabel{}
		for n, l := range im.long {
			dump[n.Path()] = [2]pathLabel{l, im.short[n]}
		}
		debug.LogAny(dump)
	}
	im.impute(root)
	return nil
}

// label walks root in post-order recording, for every node, the oldest
// dated age beneath it along the longest and the shortest path, and
// returns the labels as seen from the parent.
func (im *imputer) label(n *ir.Node) (pathLabel, pathLabel) {
	long := pathLabel{Age: 0, Edges: -1e8}
	short := pathLabel{Age: 0, Edges: 1e8}
	for _, c := range n.Children {
		l, s := im.label(c)
		if older(l, long) {
			long = l
		}
		if olderShort(s, short) {
			short = s
		}
	}
	switch {
	case n.Date != nil:
		long = pathLabel{Age: *n.Date}
		short = long
	case n.IsLeaf():
		long = pathLabel{}
		short = long
	}
	im.long[n] = long
	im.short[n] = short
	long.Edges++
	short.Edges++
	return long, short
}

func (im *imputer) impute(root *ir.Node) {
	for _, n := range root.PreOrder() {
		if n.Date != nil {
			continue
		}
		if n.IsLeaf() {
			if !isInclusion(n) {
				n.Date = new(float64)
			}
			continue
		}
		above := *n.Parent.Date
		dl := interpolate(above, im.long[n], im.bias)
		ds := interpolate(above, im.short[n], im.bias)
		d := im.mix*dl + (1-im.mix)*ds
		n.Date = &d
	}
}

// interpolate places a node one step down a path of l.Edges+1 steps from
// age above to age l.Age, with steps spaced along exp(bias*x).
func interpolate(above float64, l pathLabel, bias float64) float64 {
	steps := l.Edges + 1
	sum := 0.0
	for i := 0; i < steps; i++ {
		x := 0.0
		if steps > 1 {
			x = float64(i) / float64(steps-1)
		}
		sum += math.Exp(bias * x)
	}
	return above - (above-l.Age)/sum
}

// BranchLengths sets every edge length to the parent's age minus the
// node's. Edges touching an undated node are left alone.
func BranchLengths(root *ir.Node) error {
	for _, n := range root.PreOrder() {
		if n.Parent == nil || n.Date == nil || n.Parent.Date == nil {
			continue
		}
		v := *n.Parent.Date - *n.Date
		if v < 0 {
			return fmt.Errorf("%w: %s is older than its parent", ErrNegativeBranch, n.Path())
		}
		n.Length = v
		n.HasLength = true
	}
	return nil
}
