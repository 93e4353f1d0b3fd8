package libdiff

import (
	"slices"

	"github.com/onezoom/oztree/ir"
)

// Leaves returns the leaf names found only in a and only in b, sorted.
func Leaves(a, b *ir.Node) (onlyA, onlyB []string) {
	inA := leafSet(a)
	inB := leafSet(b)
	for name := range inA {
		if !inB[name] {
			onlyA = append(onlyA, name)
		}
	}
	for name := range inB {
		if !inA[name] {
			onlyB = append(onlyB, name)
		}
	}
	slices.Sort(onlyA)
	slices.Sort(onlyB)
	return onlyA, onlyB
}

func leafSet(root *ir.Node) map[string]bool {
	res := map[string]bool{}
	for _, n := range root.Leaves() {
		res[n.Name] = true
	}
	return res
}
