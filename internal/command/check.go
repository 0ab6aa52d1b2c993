// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/fragnav/internal/fetch"
	"github.com/staranto/fragnav/internal/meta"
	"github.com/staranto/fragnav/internal/output"
	"github.com/staranto/fragnav/internal/pathres"
	"github.com/staranto/fragnav/internal/rewrite"
	"github.com/staranto/fragnav/internal/site"
)

var checkColumns = []string{"page", "kind", "depth", "target", "status", "size", "ok"}

// pageLister is implemented by retrievers that can enumerate their pages.
type pageLister interface {
	Pages() ([]string, error)
}

// checker probes the pages of one site.
type checker struct {
	retriever fetch.Retriever
	opts      site.Options
	parallel  int

	mu   sync.Mutex
	rows []map[string]interface{}
}

// CheckCommandAction is the action handler for the "check" subcommand. It
// opens every page of the site, classifies it, and probes the header,
// footer and section fragments its links depend on.
func CheckCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "check") {
		return nil
	}
	if DumpColumnsIfRequested(cmd, checkColumns) {
		return nil
	}

	parallel := int(cmd.Int("parallel"))
	if err := FlagValidators(parallel, PositiveValidator); err != nil {
		return fmt.Errorf("--parallel %w", err)
	}

	r, err := NewRetriever(ctx, cmd)
	if err != nil {
		return err
	}

	opts := siteOptions(cmd)
	pages := cmd.StringSlice("pages")
	if len(pages) == 0 {
		pages, err = listPages(r, opts)
		if err != nil {
			return err
		}
	}

	c := &checker{retriever: r, opts: opts, parallel: parallel}
	rows, problems, err := c.run(ctx, pages)
	if err != nil {
		return err
	}

	if err := output.SliceDiceSpit(rows, checkColumns, output.OptionsFromCommand(cmd), cmd.Root().Writer); err != nil {
		return err
	}
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found in %d page(s)", problems, len(pages))
	}
	return nil
}

// listPages enumerates the pages of a directory site, skipping the fragment
// trees. Other backends cannot be listed and fall back to the entry page.
func listPages(r fetch.Retriever, opts site.Options) ([]string, error) {
	res := pathres.Resolver{Base: opts.Base, Entry: opts.Entry}

	lister, ok := r.(pageLister)
	if !ok {
		log.Debugf("site cannot list pages, checking %s only", res.EntryLocation())
		return []string{res.EntryLocation()}, nil
	}

	all, err := lister.Pages()
	if err != nil {
		return nil, err
	}

	base := "/" + strings.Trim(opts.Base, "/")
	var pages []string
	for _, p := range all {
		if strings.HasPrefix(p, "/"+pathres.ComponentsRoot) || strings.HasPrefix(p, "/"+pathres.SectionsRoot) {
			continue
		}
		pages = append(pages, path.Join(base, p))
	}
	return pages, nil
}

// run checks every page with at most c.parallel pages in flight. It returns
// the rows sorted by page and the number of failed probes.
func (c *checker) run(ctx context.Context, pages []string) ([]map[string]interface{}, int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)

	for _, page := range pages {
		g.Go(func() error {
			return c.checkPage(gctx, page)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	sort.SliceStable(c.rows, func(i, j int) bool {
		return c.rows[i]["page"].(string) < c.rows[j]["page"].(string)
	})

	problems := 0
	for _, row := range c.rows {
		if !row["ok"].(bool) {
			problems++
		}
	}
	return c.rows, problems, nil
}

func (c *checker) checkPage(ctx context.Context, page string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s, err := site.Open(ctx, c.retriever, page, c.opts)
	if err != nil {
		log.WithError(err).Warnf("check: %s", page)
		c.add(map[string]interface{}{
			"page": page, "kind": "page", "target": page, "status": 0, "size": "-", "ok": false,
		})
		return nil
	}

	p := s.Router.Page()
	res := s.Router.Resolver()
	probe := fetch.RelativeTo(fetch.Under(c.retriever, c.opts.Base), page)

	dir := res.PageComponentDir(p)
	header := c.probe(ctx, probe, page, p, "header", dir+"header.html")
	c.probe(ctx, probe, page, p, "footer", dir+"footer.html")

	if p.Nested {
		c.probe(ctx, probe, page, p, "entry", res.EntryPage(page))
		return nil
	}

	ids, err := rewrite.HashTargets(header)
	if err != nil {
		log.WithError(err).Warnf("check: header links on %s", page)
		return nil
	}
	for _, id := range ids {
		c.probe(ctx, probe, page, p, "section", pathres.SectionPath(id))
	}
	return nil
}

// probe retrieves target, records a row and returns the body.
func (c *checker) probe(ctx context.Context, r fetch.Retriever, page string, p pathres.Page, kind string, target string) string {
	resp, err := r.Retrieve(ctx, target)
	if err != nil {
		log.WithError(err).Warnf("check: %s %s", page, target)
	}

	c.add(map[string]interface{}{
		"page":   page,
		"kind":   kind,
		"depth":  p.Depth,
		"target": target,
		"status": resp.Status,
		"size":   humanize.Bytes(uint64(len(resp.Body))),
		"ok":     err == nil && resp.OK(),
	})
	return resp.Body
}

func (c *checker) add(row map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, row)
}

// CheckCommandBuilder constructs the cli.Command for "check", wiring
// metadata, flags, and action/validator handlers.
func CheckCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	b := &CommandBuilder{
		Name:      "check",
		Usage:     "verify every page resolves its shared fragments",
		UsageText: `fragnav check [options]`,
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"P"},
				Usage:   "pages checked concurrently",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("check.parallel", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 4,
			},
			&cli.StringSliceFlag{
				Name:  "pages",
				Usage: "pages to check, for sites that cannot be listed",
			},
		},
		Action: CheckCommandAction,
	}
	return b.Build()
}
