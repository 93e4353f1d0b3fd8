package extract

import (
	"maps"
	"slices"
	"strings"

	"github.com/onezoom/oztree/debug"
	"github.com/onezoom/oztree/newick"
)

// Subtree is one extracted subtree.
type Subtree struct {
	// Key is the node's ott if it has one, otherwise its taxon.
	Key  string
	Text string

	start  int
	needed int
}

// span is a half-open byte range of the source.
type span struct {
	from, to int
}

// Subtrees extracts the subtree of every node of src named by included,
// in the order the nodes are found. Nodes named by excluded are cut out
// of the result along with one adjacent comma. Names that are never found
// are logged as a single warning.
//
// A node that is both included and excluded is still extracted; only
// its excluded descendants are removed.
func Subtrees(src []byte, included, excluded []string, opts ...ExtractOption) ([]Subtree, error) {
	o := getOpts(opts)
	targets := make(map[string]bool, len(included))
	for _, id := range included {
		targets[id] = true
	}
	drop := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		drop[id] = true
	}

	var (
		subs   []*Subtree
		ranges []span
		needed int
	)
	s := newick.NewScanner(src)
	for s.Next() {
		n := s.Node()

		if needed > 0 {
			for _, sub := range subs {
				if sub.needed > 0 && n.Start < sub.start {
					sub.Text = "(" + sub.Text + ")" + n.Taxon
					sub.needed--
					needed--
				}
			}
		}

		if n.Matches(drop) {
			r := exclusionSpan(src, &n)
			i, _ := slices.BinarySearchFunc(ranges, r.from, func(a span, from int) int {
				return a.from - from
			})
			ranges = slices.Insert(ranges, i, r)
			if debug.Extract() {
				o.logger.Debug("excluding", "node", n.Label, "from", r.from, "to", r.to)
			}
		}

		if n.Matches(targets) {
			if targets[n.Taxon] {
				delete(targets, n.Taxon)
			} else {
				delete(targets, n.Ott)
			}
			sub := &Subtree{
				Key:    n.ID(),
				Text:   copyWithout(src, n.Start, n.End, ranges),
				start:  n.Start,
				needed: o.ancestors,
			}
			subs = append(subs, sub)
			needed += o.ancestors
			if debug.Extract() {
				o.logger.Debug("extracted", "node", n.Label, "key", sub.Key, "bytes", len(sub.Text))
			}
		}

		if len(targets) == 0 && needed == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(targets) != 0 {
		missing := slices.Sorted(maps.Keys(targets))
		o.logger.Warn("could not find the following taxa", "taxa", strings.Join(missing, ", "))
	}
	res := make([]Subtree, len(subs))
	for i, sub := range subs {
		res[i] = *sub
	}
	return res, nil
}

// Extract is Subtrees keyed by ott, or by taxon for nodes without one.
func Extract(src []byte, included, excluded []string, opts ...ExtractOption) (map[string]string, error) {
	subs, err := Subtrees(src, included, excluded, opts...)
	if err != nil {
		return nil, err
	}
	res := make(map[string]string, len(subs))
	for _, sub := range subs {
		res[sub.Key] = sub.Text
	}
	return res, nil
}

// exclusionSpan returns n's span extended over the preceding comma, or
// failing that the following one.
func exclusionSpan(src []byte, n *newick.Node) span {
	switch {
	case n.Start > 0 && src[n.Start-1] == ',':
		return span{n.Start - 1, n.End}
	case n.End < len(src) && src[n.End] == ',':
		return span{n.Start, n.End + 1}
	default:
		return span{n.Start, n.End}
	}
}

// copyWithout copies src[start:end] skipping the ranges that begin
// strictly inside it.
func copyWithout(src []byte, start, end int, ranges []span) string {
	var out []byte
	prev := span{start, start}
	for _, r := range ranges {
		if r.from > start && r.from < end && r.to > prev.to {
			out = appendPiece(out, src, prev.to, r.from)
			prev = r
		}
	}
	out = appendPiece(out, src, prev.to, end)
	return string(out)
}

// appendPiece appends src[from:to], dropping a leading comma that would
// otherwise follow an open parenthesis.
func appendPiece(out, src []byte, from, to int) []byte {
	if len(out) > 0 && out[len(out)-1] == '(' && from < len(src) && src[from] == ',' {
		from++
	}
	if from < to {
		out = append(out, src[from:to]...)
	}
	return out
}
