// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/fragnav/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// newSchemaFlag and newTldrFlag return fresh flags per command; cli keeps
// parsed values on the flag itself.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the columns available to --filter and --sort",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output flags shared by the table-emitting
// commands. params[0] is the command name, used as the config namespace.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: isTerminal(os.Stdout),
		},
		&cli.StringFlag{
			Name:    "columns",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of key[:title[:transform]] column specs",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"columns", altsrc.StringSourcer(cfg.Source)),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewSiteFlag constructs the --site flag: the retrieval root as a directory,
// an http(s) URL or s3://bucket/prefix. params[0] is the command namespace
// and params[1] the config file.
func NewSiteFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "site",
		Usage: "site root: directory, http(s) URL or s3://bucket/prefix",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FRAGNAV_SITE"),
		),
		Value: ".",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
		flag.Sources.Chain = append(flag.Sources.Chain,
			yaml.YAML("site.root", altsrc.StringSourcer(params[1])))
	}

	return
}

// NewBaseFlag constructs the --base flag, the URL path the site is served
// under. params[0] is the config file.
func NewBaseFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "base",
		Usage: "URL path the site is served under",
		Value: "/",
	}
	if len(params) == 1 {
		flag.Sources = cli.NewValueSourceChain(
			yaml.YAML("site.base", altsrc.StringSourcer(params[0])),
		)
	}
	return flag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
