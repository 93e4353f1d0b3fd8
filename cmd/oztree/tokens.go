package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/onezoom/oztree/mapping"
	"github.com/onezoom/oztree/token"
	"github.com/scott-cotton/cli"
)

func tokens(cfg *TokensConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tokens.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: tokens requires fragment files", cli.ErrUsage)
	}
	var table *mapping.Table
	if cfg.Map != "" {
		table, err = mapping.Load(cfg.Map)
		if err != nil {
			return err
		}
	}
	for _, file := range args {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		for _, tok := range token.Scan(d) {
			if table != nil {
				res, err := tok.Resolve(table, filepath.Dir(file), ".")
				if err != nil {
					return fmt.Errorf("%s at offset %d: %w", file, tok.Start, err)
				}
				tok = res
			}
			if err := writeToken(cc.Out, file, &tok); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeToken prints one line per token:
//
//	file:offset kind name ott excluded edge [file]
func writeToken(w io.Writer, file string, tok *token.Token) error {
	kind, name, ott, excl := "", tok.NodeName, "-", "-"
	switch inc := tok.Inclusion.(type) {
	case token.Reference:
		kind, ott = "reference", inc.BaseOtt
		if len(inc.ExcludedOtts) != 0 {
			excl = strings.Join(inc.ExcludedOtts, ",")
		}
	case token.Fragment:
		kind, name = "fragment", inc.Name
	}
	if name == "" {
		name = "-"
	}
	edge := "-"
	if tok.EdgeLength != nil {
		edge = strconv.FormatFloat(*tok.EdgeLength, 'f', -1, 64)
	}
	line := fmt.Sprintf("%s:%d %s %s %s %s %s", file, tok.Start, kind, name, ott, excl, edge)
	if tok.File != "" {
		line += " " + tok.File
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
