// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fragnav/internal/meta"
	"github.com/staranto/fragnav/internal/output"
	"github.com/staranto/fragnav/internal/site"
)

// RenderCommandAction is the action handler for the "render" subcommand. It
// opens a page, initializes it, replays the requested hash navigations and
// tab selections, and writes the resulting document.
func RenderCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "render") {
		return nil
	}

	s, err := OpenSite(ctx, cmd, cmd.Args().First())
	if err != nil {
		return err
	}

	if err := replay(ctx, s, cmd.StringSlice("nav"), cmd.StringSlice("tab")); err != nil {
		return err
	}

	var out string
	if cmd.Bool("text") {
		out = s.MainText()
		if s.Router.Page().Nested {
			out = s.Document.QueryTag("body").Text()
		}
		out += "\n"
	} else if out, err = s.Render(); err != nil {
		return err
	}

	if err := writeOutput(cmd.Root().Writer, cmd.String("out"), out); err != nil {
		return err
	}

	opts := output.Options{Format: "text", Titles: true, Color: isTerminal(os.Stderr)}
	if cmd.Bool("history") {
		if err := output.SliceDiceSpit(historyRows(s), []string{"n", "url"}, opts, cmd.Root().ErrWriter); err != nil {
			return err
		}
	}
	if cmd.Bool("stats") {
		if err := output.SliceDiceSpit(statsRows(s), []string{"stat", "value"}, opts, cmd.Root().ErrWriter); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes out to file, or to w when file is empty or "-". The file
// is closed before returning so a failed flush is reported.
func writeOutput(w io.Writer, file string, out string) error {
	if file == "" || file == "-" {
		_, err := io.WriteString(w, out)
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	if _, err := io.WriteString(f, out); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", file, err)
	}
	return nil
}

// replay initializes the page, then applies navigations and tab selections
// in order.
func replay(ctx context.Context, s *site.Context, navs []string, tabs []string) error {
	if err := s.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", s.Document.Location(), err)
	}
	for _, hash := range navs {
		s.Navigate(ctx, hash)
	}
	for _, tab := range tabs {
		if err := s.SelectTab(ctx, tab); err != nil {
			return err
		}
	}
	return nil
}

func historyRows(s *site.Context) []map[string]interface{} {
	var rows []map[string]interface{}
	for i, e := range s.History.Entries() {
		rows = append(rows, map[string]interface{}{"n": i + 1, "url": e.URL})
	}
	return rows
}

func statsRows(s *site.Context) []map[string]interface{} {
	st := s.Loader.Stats()
	return []map[string]interface{}{
		{"stat": "fetches", "value": humanize.Comma(st.Fetches)},
		{"stat": "hits", "value": humanize.Comma(st.Hits)},
		{"stat": "failures", "value": humanize.Comma(st.Failures)},
		{"stat": "cached", "value": fmt.Sprintf("%d (%s)", st.Entries, humanize.Bytes(st.Bytes))},
		{"stat": "section", "value": s.Router.Current()},
	}
}

// RenderCommandBuilder constructs the cli.Command for "render", wiring
// metadata, flags, and action handlers.
func RenderCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render a page after navigation",
		UsageText: `fragnav render [PAGE[#hash]] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "nav",
				Usage: "hash navigations to apply after initialization",
			},
			&cli.StringSliceFlag{
				Name:  "tab",
				Usage: "roster tabs to select after navigation",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "write the document to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "text",
				Usage: "write the readable text of the main region instead of markup",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("render.text", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "print the history entries to stderr",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print loader statistics to stderr",
			},
			newTldrFlag(),
			NewSiteFlag("render", meta.Config.Source),
			NewBaseFlag(meta.Config.Source),
		},
		Action: RenderCommandAction,
	}
}
