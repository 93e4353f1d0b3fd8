package main

import (
	"fmt"
	"os"

	"github.com/onezoom/oztree/extract"
	"github.com/scott-cotton/cli"
)

func extractParts(cfg *ExtractConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Extract.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 3 {
		return fmt.Errorf("%w: extract requires a reference file, an output dir and fragment files, got %v", cli.ErrUsage, args)
	}
	if cfg.Ancestors < 0 {
		return fmt.Errorf("%w: -a must not be negative", cli.ErrUsage)
	}
	ref, dir, files := args[0], args[1], args[2:]
	log := cfg.logger()
	req, err := extract.Gather(files...)
	if err != nil {
		return err
	}
	log.Info("gathered otts", "included", len(req.Included), "excluded", len(req.Excluded))
	src, err := readInput(cc, ref)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	_, err = extract.WriteParts(src, dir, req,
		extract.IncludedAncestors(cfg.Ancestors),
		extract.WithLogger(log))
	return err
}
