package ir

import (
	"strconv"
	"strings"
)

// Path names n by the labels from the root down, e.g. "$.Life.Birds".
// Unnamed nodes appear as their index among their siblings.
func (n *Node) Path() string {
	if n.Parent == nil {
		if n.Name == "" {
			return "$"
		}
		return "$." + pathString(n.Name)
	}
	prefix := n.Parent.Path()
	if n.Name == "" {
		return prefix + "[" + strconv.Itoa(n.ParentIndex) + "]"
	}
	return prefix + "." + pathString(n.Name)
}

func pathString(f string) string {
	if strings.IndexAny(f, "'.*$[]") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// Find returns the first node in pre-order named name, or nil.
func (n *Node) Find(name string) *Node {
	for _, x := range n.PreOrder() {
		if x.Name == name {
			return x
		}
	}
	return nil
}
