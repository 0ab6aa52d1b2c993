// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fragnav/internal/fetch"
	"github.com/staranto/fragnav/internal/meta"
	"github.com/staranto/fragnav/internal/output"
	"github.com/staranto/fragnav/internal/pathres"
)

var resolveColumns = []string{"id", "path", "components", "link", "status"}

// ResolveCommandAction is the action handler for the "resolve" subcommand. It
// maps section ids to fragment paths, and page-relative component and entry
// links for --page, optionally probing each fragment.
func ResolveCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "resolve") {
		return nil
	}
	if DumpColumnsIfRequested(cmd, resolveColumns) {
		return nil
	}

	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return errors.New("at least one section id is required")
	}

	res := resolverFor(cmd)
	page := cmd.String("page")
	if page == "" {
		page = res.EntryLocation()
	}

	columns := resolveColumns[:len(resolveColumns)-1]
	var probe fetch.Retriever
	if cmd.Bool("probe") {
		r, err := NewRetriever(ctx, cmd)
		if err != nil {
			return err
		}
		probe = fetch.RelativeTo(fetch.Under(r, res.Base), res.EntryLocation())
		columns = resolveColumns
	}

	rows := resolveRows(ctx, ids, page, res, probe)
	return output.SliceDiceSpit(rows, columns, output.OptionsFromCommand(cmd), cmd.Root().Writer)
}

// resolveRows builds one row per section id. Section paths are relative to
// the entry page, which is where sections are loaded. probe may be nil.
func resolveRows(ctx context.Context, ids []string, page string, res pathres.Resolver, probe fetch.Retriever) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		row := map[string]interface{}{
			"id":         id,
			"path":       pathres.SectionPath(id),
			"components": res.ComponentDir(page),
			"link":       res.EntryLink(page, id),
		}

		if probe != nil {
			resp, err := probe.Retrieve(ctx, pathres.SectionPath(id))
			if err != nil {
				log.WithError(err).Warnf("probe %s", id)
			}
			row["status"] = resp.Status
		}

		rows = append(rows, row)
	}
	return rows
}

// ResolveCommandBuilder constructs the cli.Command for "resolve", wiring
// metadata, flags, and action/validator handlers.
func ResolveCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	b := &CommandBuilder{
		Name:      "resolve",
		Usage:     "resolve section ids to fragment paths",
		UsageText: `fragnav resolve ID... [options]`,
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "page",
				Aliases: []string{"p"},
				Usage:   "page the component dir and entry links are relative to",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("resolve.page", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			&cli.BoolFlag{
				Name:  "probe",
				Usage: "retrieve each fragment and report its status",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("resolve.probe", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
		},
		Action: ResolveCommandAction,
	}
	return b.Build()
}
