package main

import (
	"github.com/onezoom/oztree/dating"
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "oztree").
		WithSynopsis("oztree [opts] command [opts]").
		WithDescription("oztree assembles, extracts, checks and dates Newick trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ozMain(cfg, cc, args)
		}).
		WithSubs(
			BuildCommand(cfg),
			ExtractCommand(cfg),
			SubtreeCommand(cfg),
			MinimalCommand(cfg),
			TokensCommand(cfg),
			CheckCommand(cfg),
			FixCommand(cfg),
			DateCommand(cfg),
			FormatCommand(cfg),
			DiffCommand(cfg))
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [opts] <base-file> <reference-parts-dir> [output-file]").
		WithDescription(buildDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

const buildDescription = `build assembles a tree from a base fragment file.

Every inclusion token in the base file is replaced by the tree it names,
recursively:

  Aves_ott81461@           the part for ott 81461, read from
                           <reference-parts-dir>/81461.phy
  Aves_ott81461~-1234-99@  the same, generated with otts 1234 and 99 cut out
  @AMORPHEA                the fragment file the mapping file gives for
                           AMORPHEA

The mapping file is YAML or JSON:

  AMORPHEA: {file: Amorphea.PHY, edge_length: 50, taxon: null}

Files that do not exist are logged and their token is left in place.`

func ExtractCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExtractConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Extract, "extract").
		WithAliases("x").
		WithSynopsis("extract [-a n] <reference-file> <output-dir> <fragment-file>...").
		WithDescription("extract the reference subtrees the fragment files refer to into <output-dir>/<ott>.phy").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return extractParts(cfg, cc, args)
		})
}

func SubtreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SubtreeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Subtree, "subtree").
		WithAliases("s").
		WithSynopsis("subtree [-x id,id] [-a n] <tree-file> <id>...").
		WithDescription("print the subtrees of a tree rooted at the given otts or taxa").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return subtree(cfg, cc, args)
		})
}

func MinimalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MinimalConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Minimal, "minimal").
		WithAliases("m").
		WithSynopsis("minimal <tree-file> <id>...").
		WithDescription("print the smallest tree joining the given otts or taxa").
		WithRun(func(cc *cli.Context, args []string) error {
			return minimal(cfg, cc, args)
		})
}

func TokensCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TokensConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tokens, "tokens").
		WithAliases("t").
		WithSynopsis("tokens [-map file] <fragment-file>...").
		WithDescription("list the inclusion tokens of fragment files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tokens(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-details] <tree-file>...").
		WithDescription("check that every leaf of a tree is the same distance from the root").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func FixCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FixConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Fix, "fix").
		WithSynopsis("fix <tree-file> <age> [max-adjustment]").
		WithDescription("adjust leaf edge lengths so every leaf has the given age").
		WithRun(func(cc *cli.Context, args []string) error {
			return fix(cfg, cc, args)
		})
}

func DateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DateConfig{MainConfig: mainCfg, Mix: dating.DefaultMix, Bias: dating.DefaultBias}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "mix",
			Description: "weight of the longest path when breaking ties",
			Type:        cli.NamedFuncOpt(floatOpt(&cfg.Mix), "(weight)"),
		},
		&cli.Opt{
			Name:        "bias",
			Description: "spacing bias, >0 dates older and <0 younger",
			Type:        cli.NamedFuncOpt(floatOpt(&cfg.Bias), "(bias)"),
		})
	return cli.NewCommandAt(&cfg.Date, "date").
		WithAliases("d").
		WithSynopsis("date [opts] <tree-file>").
		WithDescription(dateDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return date(cfg, cc, args)
		})
}

const dateDescription = `date fills in missing node dates.

Known dates come from -ages, a file of the form

  {"node_ages": {"81461": [{"age": 112.5}, {"age": 120}]}}

keyed by ott or by full node name, where each node takes the median age.
Without -ages, dates are computed from edge lengths.

Undated nodes are then spaced between their parent and the oldest date
below them. The -where expression prunes nodes before dating, e.g.

  -where 'leaf && !dated && inclusion'

The tree is written with [&&NHX:date=x] annotations.`

func FormatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FormatConfig{MainConfig: mainCfg, Indent: 2}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Format, "format").
		WithAliases("f", "fmt").
		WithSynopsis("format [-i n] [tree-file]").
		WithDescription("print a tree one node per line").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff [-c n] [-leaves] <tree-a> <tree-b>").
		WithDescription("diff two trees line by line; exits 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
