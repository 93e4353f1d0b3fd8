package dating

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/onezoom/oztree/ir"
	"github.com/onezoom/oztree/token"
)

// minInteriorAge is the smallest median age kept for an interior node.
const minInteriorAge = 0.000001

// Ages maps an ott ("ott1234") or a full node name to the ages recorded
// for it.
type Ages map[string][]float64

type agesDoc struct {
	NodeAges map[string][]struct {
		Age any `yaml:"age"`
	} `yaml:"node_ages"`
}

// DecodeAges reads a node ages document:
//
//	{"node_ages": {"ott81461": [{"age": 111.0}, {"age": "98.5"}]}}
func DecodeAges(d []byte) (Ages, error) {
	doc := agesDoc{}
	if err := yaml.Unmarshal(d, &doc); err != nil {
		return nil, err
	}
	res := make(Ages, len(doc.NodeAges))
	for k, entries := range doc.NodeAges {
		vs := make([]float64, 0, len(entries))
		for _, e := range entries {
			v, err := toFloat(e.Age)
			if err != nil {
				return nil, fmt.Errorf("%w for %q: %w", ErrAge, k, err)
			}
			vs = append(vs, v)
		}
		res[k] = vs
	}
	return res, nil
}

func LoadAges(path string) (Ages, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ages, err := DecodeAges(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ages, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unexpected age %v", v)
	}
}

// Median returns the median of vs, or nil when vs is empty.
func Median(vs []float64) *float64 {
	if len(vs) == 0 {
		return nil
	}
	s := slices.Clone(vs)
	slices.Sort(s)
	mid := (len(s) - 1) / 2
	m := s[mid]
	if len(s)%2 == 0 {
		m = (s[mid] + s[mid+1]) / 2
	}
	return &m
}

// key is the node's "ott<digits>" suffix, or its full name.
func key(n *ir.Node) string {
	if ott := n.Ott(); ott != "" {
		return "ott" + ott
	}
	return n.Name
}

func isInclusion(n *ir.Node) bool {
	_, ok := token.Decode(n.Name)
	return ok
}

// Apply dates every node of root from ages. A node without recorded ages
// gets 0 if it is a leaf that is not an inclusion token, and no date
// otherwise. Interior medians below 1e-6 are dropped with a warning. An
// empty table leaves the tree untouched.
func Apply(root *ir.Node, ages Ages, logger *slog.Logger) {
	if len(ages) == 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, n := range root.PreOrder() {
		n.Date = Median(ages[key(n)])
		if n.Date == nil && n.IsLeaf() && !isInclusion(n) {
			n.Date = new(float64)
		}
		if n.Date != nil && !n.IsLeaf() && *n.Date < minInteriorAge {
			logger.Warn("interior node has median age of 0, setting to none", "node", n.Name)
			n.Date = nil
		}
	}
}

// FromLengths dates root from its edge lengths. Leaves are 0, except
// inclusion tokens which stay undated. A parent is the oldest of its
// children's ages plus their edge lengths, and is undated if any child
// is undated or lacks a length.
func FromLengths(root *ir.Node) {
	for _, n := range root.PostOrder() {
		if n.IsLeaf() && isInclusion(n) {
			n.Date = nil
			continue
		}
		date := new(float64)
		for _, c := range n.Children {
			if c.Date == nil || !c.HasLength {
				date = nil
				break
			}
			if v := *c.Date + c.Length; v > *date {
				*date = v
			}
		}
		n.Date = date
	}
}
