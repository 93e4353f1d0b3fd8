package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/onezoom/oztree/libdiff"
	"github.com/onezoom/oztree/newick"
	"github.com/onezoom/oztree/parse"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	b, err := readInput(cc, args[1])
	if err != nil {
		return err
	}
	differs, err := cfg.run(cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return errDiffers
	}
	return nil
}

func (cfg *DiffConfig) run(w io.Writer, a, b []byte) (bool, error) {
	var fa, fb bytes.Buffer
	if err := newick.Format(a, &fa, 2); err != nil {
		return false, fmt.Errorf("error formatting first tree: %w", err)
	}
	if err := newick.Format(b, &fb, 2); err != nil {
		return false, fmt.Errorf("error formatting second tree: %w", err)
	}
	lines := libdiff.Lines(fa.String(), fb.String())
	if !libdiff.Changed(lines) {
		return false, nil
	}
	if err := libdiff.Write(w, lines, cfg.Context, cfg.colored(w)); err != nil {
		return true, err
	}
	if !cfg.Leaves {
		return true, nil
	}
	ta, err := parse.Parse(a)
	if err != nil {
		return true, err
	}
	tb, err := parse.Parse(b)
	if err != nil {
		return true, err
	}
	onlyA, onlyB := libdiff.Leaves(ta, tb)
	for _, name := range onlyA {
		if _, err := fmt.Fprintf(w, "only in first: %s\n", name); err != nil {
			return true, err
		}
	}
	for _, name := range onlyB {
		if _, err := fmt.Fprintf(w, "only in second: %s\n", name); err != nil {
			return true, err
		}
	}
	return true, nil
}
