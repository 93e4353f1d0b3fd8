package main

import (
	"fmt"
	"io"

	"github.com/onezoom/oztree/dating"
	"github.com/onezoom/oztree/encode"
	"github.com/onezoom/oztree/filter"
	"github.com/onezoom/oztree/ir"
	"github.com/onezoom/oztree/parse"
	"github.com/scott-cotton/cli"
)

func date(cfg *DateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Date.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: date requires one tree file, got %v", cli.ErrUsage, args)
	}
	root, err := parse.File(args[0])
	if err != nil {
		return err
	}
	var ages dating.Ages
	if cfg.Ages != "" {
		ages, err = dating.LoadAges(cfg.Ages)
		if err != nil {
			return err
		}
	}
	return cfg.run(cc.Out, root, ages)
}

// run dates root in place and writes it to w. A nil ages table means
// dates come from edge lengths.
func (cfg *DateConfig) run(w io.Writer, root *ir.Node, ages dating.Ages) error {
	log := cfg.logger()
	if ids := splitIDs(cfg.Exclude); len(ids) != 0 {
		n := filter.Otts(root, ids)
		log.Info("pruned excluded otts", "nodes", n)
	}
	if ages != nil {
		dating.Apply(root, ages, log)
	} else {
		dating.FromLengths(root)
	}
	if cfg.Where != "" {
		n, err := filter.Where(root, cfg.Where)
		if err != nil {
			return err
		}
		log.Info("pruned matching nodes", "nodes", n)
	}
	if root.Date == nil {
		log.Warn("root is undated, dates are not imputed")
	} else {
		err := dating.Impute(root,
			dating.WithMix(cfg.Mix),
			dating.WithBias(cfg.Bias),
			dating.WithLogger(log))
		if err != nil {
			return err
		}
	}
	if cfg.Lengths {
		if err := dating.BranchLengths(root); err != nil {
			return err
		}
	}
	return encode.Encode(root, w, encode.EncodeDates(true))
}
