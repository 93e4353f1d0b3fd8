package extract

import (
	"maps"
	"slices"
	"strings"

	"github.com/onezoom/oztree/newick"
)

type minimalNode struct {
	text  string
	depth int
}

// Minimal returns the smallest tree joining the nodes of src named by
// included. Interior nodes survive only where two or more kept lineages
// meet, keeping their own label and edge length. It reports false when
// none of the nodes is found.
func Minimal(src []byte, included []string, opts ...ExtractOption) (string, bool, error) {
	o := getOpts(opts)
	targets := make(map[string]bool, len(included))
	for _, id := range included {
		targets[id] = true
	}

	var kept []minimalNode
	s := newick.NewScanner(src)
	for s.Next() {
		n := s.Node()
		found := false
		if n.Matches(targets) {
			if targets[n.Taxon] {
				delete(targets, n.Taxon)
			} else {
				delete(targets, n.Ott)
			}
			found = true
		}
		if found || !n.Leaf {
			// anything deeper has already been bubbled up to depth+1
			i := slices.IndexFunc(kept, func(k minimalNode) bool { return k.depth > n.Depth })
			if i < 0 {
				i = len(kept)
			}
			children := kept[i:]
			for j := range children {
				children[j].depth--
			}
			if found || len(children) > 1 {
				text := string(src[n.NameStart:n.End])
				if len(children) > 0 {
					parts := make([]string, len(children))
					for j, c := range children {
						parts[j] = c.text
					}
					text = "(" + strings.Join(parts, ",") + ")" + text
				}
				kept = append(kept[:i], minimalNode{text: text, depth: n.Depth})
			}
		}
		if len(targets) == 0 && len(kept) <= 1 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return "", false, err
	}
	if len(targets) != 0 {
		missing := slices.Sorted(maps.Keys(targets))
		o.logger.Warn("could not find the following taxa", "taxa", strings.Join(missing, ", "))
	}
	if len(kept) == 0 {
		return "", false, nil
	}
	return kept[0].text, true, nil
}
