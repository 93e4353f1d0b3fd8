package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	V     int  `cli:"name=v desc='verbosity: 0 warnings, 1 info, 2 debug'"`
	Gops  bool `cli:"name=gops desc='start a gops diagnostics agent'"`
	Color bool `cli:"name=color desc='color logs and diffs'"`

	Out      string
	CloseOut func() error

	Log *slog.Logger

	Main *cli.Command
}

// colored reports whether output to w gets color. -color forces it,
// otherwise only terminals do.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Log == nil {
		return slog.Default()
	}
	return cfg.Log
}

func floatOpt(dst *float64) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", cli.ErrUsage, v)
		}
		*dst = f
		return f, nil
	})
}

// splitIDs splits a comma separated list of ids, dropping empty items.
func splitIDs(s string) []string {
	var res []string
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			res = append(res, id)
		}
	}
	return res
}

type BuildConfig struct {
	*MainConfig
	Map       string `cli:"name=map desc='mapping file (default mapping.{yaml,yml,json} next to the base file)'"`
	Fragments string `cli:"name=fragments desc='directory fragment files are resolved in (default the base file directory)'"`
	FileTree  bool   `cli:"name=filetree desc='print the nesting of included files to stderr'"`

	Build *cli.Command
}

type ExtractConfig struct {
	*MainConfig
	Ancestors int `cli:"name=a desc='number of ancestor levels to include'"`

	Extract *cli.Command
}

type SubtreeConfig struct {
	*MainConfig
	Exclude   string `cli:"name=x desc='comma separated ids to cut out of the results'"`
	Ancestors int    `cli:"name=a desc='number of ancestor levels to include'"`

	Subtree *cli.Command
}

type MinimalConfig struct {
	*MainConfig

	Minimal *cli.Command
}

type TokensConfig struct {
	*MainConfig
	Map string `cli:"name=map desc='mapping file used to resolve fragment names'"`

	Tokens *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Details bool `cli:"name=details desc='print every leaf age and the age histogram'"`
	Strict  bool `cli:"name=strict desc='fail on interior nodes without an edge length'"`

	Check *cli.Command
}

type FixConfig struct {
	*MainConfig

	Fix *cli.Command
}

type DateConfig struct {
	*MainConfig
	Ages    string `cli:"name=ages desc='node ages file'"`
	Exclude string `cli:"name=exclude desc='comma separated otts to prune before dating'"`
	Where   string `cli:"name=where desc='prune nodes matching this expression'"`
	Lengths bool   `cli:"name=lengths desc='replace edge lengths with date differences'"`
	Mix     float64
	Bias    float64

	Date *cli.Command
}

type FormatConfig struct {
	*MainConfig
	Indent int `cli:"name=i desc='indentation per level'"`

	Format *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Context int  `cli:"name=c desc='lines of context around changes, -1 for all'"`
	Leaves  bool `cli:"name=leaves desc='also list leaves found in only one tree'"`

	Diff *cli.Command
}
