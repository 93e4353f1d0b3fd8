package ir

import (
	"regexp"
	"slices"
)

// Node is one node of a phylogenetic tree.
type Node struct {
	Name        string
	Parent      *Node
	ParentIndex int
	Children    []*Node

	// Length is the edge length to the parent. HasLength is false when
	// the source text gave none.
	Length    float64
	HasLength bool

	// Date is the node's age, nil when unknown.
	Date *float64
}

var ottSuffixRe = regexp.MustCompile(`[_ ]ott(\d+)$`)

func New(name string, children ...*Node) *Node {
	n := &Node{Name: name}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// WithLength sets the edge length.
func (n *Node) WithLength(v float64) *Node {
	n.Length = v
	n.HasLength = true
	return n
}

func (n *Node) WithDate(v float64) *Node {
	n.Date = &v
	return n
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Ott returns the number of a trailing "_ott<digits>" or " ott<digits>",
// or "".
func (n *Node) Ott() string {
	m := ottSuffixRe.FindStringSubmatch(n.Name)
	if m == nil {
		return ""
	}
	return m[1]
}

func (n *Node) AddChild(c *Node) {
	c.Parent = n
	c.ParentIndex = len(n.Children)
	n.Children = append(n.Children, c)
}

// Detach removes n from its parent.
func (n *Node) Detach() {
	p := n.Parent
	if p == nil {
		return
	}
	p.Children = slices.Delete(p.Children, n.ParentIndex, n.ParentIndex+1)
	for i := n.ParentIndex; i < len(p.Children); i++ {
		p.Children[i].ParentIndex = i
	}
	n.Parent = nil
	n.ParentIndex = 0
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

func (n *Node) Clone() *Node {
	res := &Node{
		Name:      n.Name,
		Length:    n.Length,
		HasLength: n.HasLength,
	}
	if n.Date != nil {
		d := *n.Date
		res.Date = &d
	}
	for _, c := range n.Children {
		res.AddChild(c.Clone())
	}
	return res
}

// Visit calls f on n before (isPost false) and after (isPost true) its
// children. Children are skipped when the pre-order call returns false.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// PreOrder lists n and its descendants, parents first.
func (n *Node) PreOrder() []*Node {
	var res []*Node
	stack := []*Node{n}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res = append(res, x)
		for i := len(x.Children) - 1; i >= 0; i-- {
			stack = append(stack, x.Children[i])
		}
	}
	return res
}

// PostOrder lists n and its descendants, children first.
func (n *Node) PostOrder() []*Node {
	res := n.preOrderRTL()
	slices.Reverse(res)
	return res
}

// preOrderRTL is PreOrder visiting children right to left.
func (n *Node) preOrderRTL() []*Node {
	var res []*Node
	stack := []*Node{n}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res = append(res, x)
		stack = append(stack, x.Children...)
	}
	return res
}

// LevelOrder lists n and its descendants breadth first.
func (n *Node) LevelOrder() []*Node {
	res := []*Node{n}
	for i := 0; i < len(res); i++ {
		res = append(res, res[i].Children...)
	}
	return res
}

func (n *Node) Leaves() []*Node {
	var res []*Node
	for _, x := range n.PreOrder() {
		if x.IsLeaf() {
			res = append(res, x)
		}
	}
	return res
}
