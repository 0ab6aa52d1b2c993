// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fragnav/internal/config"
	"github.com/staranto/fragnav/internal/meta"
	"github.com/staranto/fragnav/internal/pathres"
	"github.com/staranto/fragnav/internal/router"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the fragnav
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil {
		log.WithError(err).Debug("no config loaded")
	}

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}
	m.Root, _ = config.GetString("site.root", ".")
	m.Base, _ = config.GetString("site.base", "/")
	m.Entry, _ = config.GetString("site.entry", pathres.DefaultEntry)
	m.Default, _ = config.GetString("sections.default", router.DefaultSection)
	m.Roster, _ = config.GetString("sections.roster", router.DefaultRoster)
	m.RosterTab, _ = config.GetString("sections.roster_tab", router.DefaultRosterTab)

	app := &cli.Command{
		Name:  "fragnav",
		Usage: "fragment navigator for static sites",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "fragnav version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		BrowseCommandBuilder(app, m),
		CheckCommandBuilder(app, m),
		RenderCommandBuilder(app, m),
		ResolveCommandBuilder(app, m),
		CompletionCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
