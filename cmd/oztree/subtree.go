package main

import (
	"fmt"
	"io"

	"github.com/onezoom/oztree/extract"
	"github.com/onezoom/oztree/newick"
	"github.com/scott-cotton/cli"
)

func subtree(cfg *SubtreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Subtree.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: subtree requires a tree file and at least one id, got %v", cli.ErrUsage, args)
	}
	if cfg.Ancestors < 0 {
		return fmt.Errorf("%w: -a must not be negative", cli.ErrUsage)
	}
	src, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	subs, err := extract.Subtrees(newick.Trim(src, false), args[1:], splitIDs(cfg.Exclude),
		extract.IncludedAncestors(cfg.Ancestors),
		extract.WithLogger(cfg.logger()))
	if err != nil {
		return err
	}
	return writeSubtrees(cc.Out, subs)
}

// writeSubtrees prints a single result bare and several as key: tree.
func writeSubtrees(w io.Writer, subs []extract.Subtree) error {
	if len(subs) == 1 {
		_, err := fmt.Fprintf(w, "%s;\n", subs[0].Text)
		return err
	}
	for _, sub := range subs {
		if _, err := fmt.Fprintf(w, "%s: %s;\n", sub.Key, sub.Text); err != nil {
			return err
		}
	}
	return nil
}
