package main

import (
	"fmt"

	"github.com/onezoom/oztree/extract"
	"github.com/onezoom/oztree/newick"
	"github.com/scott-cotton/cli"
)

func minimal(cfg *MinimalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Minimal.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: minimal requires a tree file and at least one id, got %v", cli.ErrUsage, args)
	}
	src, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	tree, ok, err := extract.Minimal(newick.Trim(src, false), args[1:], extract.WithLogger(cfg.logger()))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("none of %v found in %s", args[1:], args[0])
	}
	_, err = fmt.Fprintf(cc.Out, "%s;\n", tree)
	return err
}
