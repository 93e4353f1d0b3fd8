package newick

import "sort"

// posDoc maps byte offsets to 0-based line and column numbers.
type posDoc struct {
	d []byte
	n []int
}

func newPosDoc(d []byte) *posDoc {
	p := &posDoc{d: d}
	for i, c := range d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

func (p *posDoc) lineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}
