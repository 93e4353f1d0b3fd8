package main

import (
	"fmt"
	"strconv"

	"github.com/onezoom/oztree/encode"
	"github.com/onezoom/oztree/parse"
	"github.com/onezoom/oztree/ultrametric"
	"github.com/scott-cotton/cli"
)

const defaultMaxAdjustment = 0.000005

func fix(cfg *FixConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fix.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: fix requires a tree file and an age, got %v", cli.ErrUsage, args)
	}
	age, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: age %q is not a number", cli.ErrUsage, args[1])
	}
	maxDelta := defaultMaxAdjustment
	if len(args) == 3 {
		maxDelta, err = strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("%w: max adjustment %q is not a number", cli.ErrUsage, args[2])
		}
	}
	root, err := parse.File(args[0])
	if err != nil {
		return err
	}
	if err := ultrametric.Fix(root, age, maxDelta); err != nil {
		return err
	}
	return encode.Encode(root, cc.Out)
}
