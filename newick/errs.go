package newick

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrSyntax = errors.New("newick syntax error")

const contextWidth = 20

// SyntaxError reports malformed Newick text. Context holds up to 20
// bytes either side of Offset. Line and Col are 0-based.
type SyntaxError struct {
	Msg     string
	Offset  int
	Line    int
	Col     int
	Context string
}

func newSyntaxError(src []byte, off int, msg string) *SyntaxError {
	lo := max(0, off-contextWidth)
	hi := min(len(src), off+contextWidth)
	if lo > hi {
		lo = hi
	}
	line, col := newPosDoc(src).lineCol(off)
	return &SyntaxError{
		Msg:     msg,
		Offset:  off,
		Line:    line,
		Col:     col,
		Context: string(src[lo:hi]),
	}
}

func (e *SyntaxError) Error() string {
	sample := strconv.Quote(e.Context)
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("%s: %s: `...%s...` at offset %d (line=%d, col=%d)",
		ErrSyntax.Error(), e.Msg, sample, e.Offset, e.Line, e.Col)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
