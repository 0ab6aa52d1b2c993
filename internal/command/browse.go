// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fragnav/internal/browse"
	"github.com/staranto/fragnav/internal/meta"
)

// BrowseCommandAction is the action handler for the "browse" subcommand. It
// opens and initializes a page, then hands it to the interactive shell.
func BrowseCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "browse") {
		return nil
	}

	s, err := OpenSite(ctx, cmd, cmd.Args().First())
	if err != nil {
		return err
	}
	if err := replay(ctx, s, nil, nil); err != nil {
		return err
	}

	model, err := browse.New(ctx, s)
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !cmd.Bool("inline") {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// BrowseCommandBuilder constructs the cli.Command for "browse", wiring
// metadata, flags, and action handlers.
func BrowseCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "browse a site's sections interactively",
		UsageText: `fragnav browse [PAGE] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "inline",
				Usage: "draw in the current screen instead of the alternate screen",
			},
			newTldrFlag(),
			NewSiteFlag("browse", meta.Config.Source),
			NewBaseFlag(meta.Config.Source),
		},
		Action: BrowseCommandAction,
	}
}
