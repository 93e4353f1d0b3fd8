// Package libdiff compares trees as text and as sets of leaves.
package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Line is one line of a line diff.
type Line struct {
	Mark string
	Text string
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	var res []Line
	for _, d := range diffs {
		mark := EqualMark
		switch d.Type {
		case diffpatch.DiffInsert:
			mark = InsertMark
		case diffpatch.DiffDelete:
			mark = DeleteMark
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			res = append(res, Line{Mark: mark, Text: strings.TrimSuffix(ln, "\n")})
		}
	}
	return res
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Mark != EqualMark {
			return true
		}
	}
	return false
}

// Write prints lines in unified style. With context >= 0 only changed
// lines and that many lines around them are shown.
func Write(w io.Writer, lines []Line, context int, colored bool) error {
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if !colored {
		del.DisableColor()
		ins.DisableColor()
	}
	show := visible(lines, context)
	skipped := false
	for i, ln := range lines {
		if !show[i] {
			skipped = true
			continue
		}
		if skipped {
			if _, err := fmt.Fprintln(w, "..."); err != nil {
				return err
			}
			skipped = false
		}
		var err error
		switch ln.Mark {
		case DeleteMark:
			_, err = del.Fprintln(w, ln.Mark+ln.Text)
		case InsertMark:
			_, err = ins.Fprintln(w, ln.Mark+ln.Text)
		default:
			_, err = fmt.Fprintln(w, ln.Mark+ln.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func visible(lines []Line, context int) []bool {
	show := make([]bool, len(lines))
	for i, ln := range lines {
		if context < 0 {
			show[i] = true
			continue
		}
		if ln.Mark == EqualMark {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			show[j] = true
		}
	}
	return show
}
