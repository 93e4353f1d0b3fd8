// Package filter prunes subtrees from an in-memory tree.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/onezoom/oztree/ir"
	"github.com/onezoom/oztree/token"
)

// Otts removes every node whose name ends in "_ott<id>" for one of otts,
// together with its descendants. It returns the number of nodes removed
// directly. The root is never removed.
func Otts(root *ir.Node, otts []string) int {
	if len(otts) == 0 {
		return 0
	}
	alts := make([]string, len(otts))
	for i, ott := range otts {
		alts[i] = regexp.QuoteMeta(ott)
	}
	re := regexp.MustCompile(`_ott(?:` + strings.Join(alts, "|") + `)$`)
	n, _ := prune(root, func(n *ir.Node) (bool, error) {
		return re.MatchString(n.Name), nil
	})
	return n
}

// Env is what a Where expression sees of each node.
type Env struct {
	Name      string  `expr:"name"`
	Ott       string  `expr:"ott"`
	Path      string  `expr:"path"`
	Length    float64 `expr:"length"`
	HasLength bool    `expr:"has_length"`
	Date      float64 `expr:"date"`
	Dated     bool    `expr:"dated"`
	Leaf      bool    `expr:"leaf"`
	Inclusion bool    `expr:"inclusion"`
	Children  int     `expr:"children"`
	Depth     int     `expr:"depth"`
}

func envOf(n *ir.Node) Env {
	e := Env{
		Name:      n.Name,
		Ott:       n.Ott(),
		Path:      n.Path(),
		Length:    n.Length,
		HasLength: n.HasLength,
		Leaf:      n.IsLeaf(),
		Children:  len(n.Children),
	}
	if n.Date != nil {
		e.Date = *n.Date
		e.Dated = true
	}
	_, e.Inclusion = token.Decode(n.Name)
	for p := n.Parent; p != nil; p = p.Parent {
		e.Depth++
	}
	return e
}

// Compile checks a Where expression without running it.
func Compile(expression string) (*vm.Program, error) {
	prg, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expression, err)
	}
	return prg, nil
}

// Where removes every node for which expression is true, with its
// descendants, e.g.
//
//	leaf && !dated
//	inclusion || name startsWith "Incertae"
//
// The root is never removed.
func Where(root *ir.Node, expression string) (int, error) {
	prg, err := Compile(expression)
	if err != nil {
		return 0, err
	}
	return prune(root, func(n *ir.Node) (bool, error) {
		res, err := expr.Run(prg, envOf(n))
		if err != nil {
			return false, fmt.Errorf("%s: %w", n.Path(), err)
		}
		return res.(bool), nil
	})
}

// prune visits root breadth first, detaching every matched node without
// visiting below it.
func prune(root *ir.Node, match func(*ir.Node) (bool, error)) (int, error) {
	removed := 0
	queue := []*ir.Node{root}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		var drop []*ir.Node
		for _, c := range x.Children {
			ok, err := match(c)
			if err != nil {
				return removed, err
			}
			if ok {
				drop = append(drop, c)
			}
		}
		for i := len(drop) - 1; i >= 0; i-- {
			drop[i].Detach()
		}
		removed += len(drop)
		queue = append(queue, x.Children...)
	}
	return removed, nil
}
