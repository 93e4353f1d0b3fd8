package main

import (
	"fmt"

	"github.com/onezoom/oztree/newick"
	"github.com/scott-cotton/cli"
)

func format(cfg *FormatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Format.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: format takes at most one tree file, got %v", cli.ErrUsage, args)
	}
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	src, err := readInput(cc, path)
	if err != nil {
		return err
	}
	return newick.Format(src, cc.Out, cfg.Indent)
}
