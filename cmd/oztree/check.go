package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/onezoom/oztree/parse"
	"github.com/onezoom/oztree/ultrametric"
	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires tree files", cli.ErrUsage)
	}
	var opts []ultrametric.CheckOption
	if cfg.Strict {
		opts = append(opts, ultrametric.WithStrictLengths())
	}
	failed := false
	for _, file := range args {
		root, err := parse.File(file)
		if err != nil {
			return err
		}
		res, err := ultrametric.Check(root, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := writeCheck(cc.Out, file, res, cfg.Details); err != nil {
			return err
		}
		if !res.Ultrametric {
			failed = true
		}
	}
	if failed {
		return errDiffers
	}
	return nil
}

func writeCheck(w io.Writer, file string, res *ultrametric.Result, details bool) error {
	if details {
		for _, l := range res.Leaves {
			if _, err := fmt.Fprintf(w, "%s\t%v\t%v\n", l.Leaf, l.Age, l.Lengths); err != nil {
				return err
			}
		}
		for _, age := range slices.Sorted(maps.Keys(res.Counts)) {
			if _, err := fmt.Fprintf(w, "age %v: %d leaves\n", age, res.Counts[age]); err != nil {
				return err
			}
		}
	}
	if !res.Ultrametric {
		_, err := fmt.Fprintf(w, "%s: %s\n", file, res.Message())
		return err
	}
	age := 0.0
	if res.First != nil {
		age = res.First.Age
	}
	_, err := fmt.Fprintf(w, "%s: ultrametric, %d leaves of age %v\n", file, len(res.Leaves), age)
	return err
}
