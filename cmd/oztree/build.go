package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/onezoom/oztree/assemble"
	"github.com/onezoom/oztree/mapping"
	"github.com/scott-cotton/cli"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: build requires a base file and a parts directory, got %v", cli.ErrUsage, args)
	}
	table, err := cfg.table(args[0])
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := cfg.run(&buf, table, args[0], args[1]); err != nil {
		return err
	}
	if len(args) == 3 {
		if err := os.WriteFile(args[2], buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("could not write %q: %w", args[2], err)
		}
		return nil
	}
	_, err = cc.Out.Write(buf.Bytes())
	return err
}

// table loads the mapping named by -map, or the one found next to base.
func (cfg *BuildConfig) table(base string) (*mapping.Table, error) {
	p := cfg.Map
	if p == "" {
		var err error
		p, err = mapping.Find(filepath.Dir(base))
		if err != nil {
			return nil, fmt.Errorf("%w (use -map)", err)
		}
	}
	return mapping.Load(p)
}

func (cfg *BuildConfig) run(w io.Writer, table *mapping.Table, base, partsDir string) error {
	log := cfg.logger()
	opts := []assemble.AssembleOption{assemble.WithLogger(log)}
	if cfg.Fragments != "" {
		opts = append(opts, assemble.WithFragmentRoot(cfg.Fragments))
	}
	if cfg.FileTree {
		opts = append(opts, assemble.WithFileTree(os.Stderr))
	}
	rep, err := assemble.New(table, opts...).Build(w, base, partsDir)
	if err != nil {
		return err
	}
	log.Info("assembled tree",
		"files", rep.FilesRead,
		"tokens", rep.TokensResolved,
		"missing", len(rep.Missing))
	return nil
}
