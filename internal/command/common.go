// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	awsx "github.com/staranto/fragnav/internal/aws"
	"github.com/staranto/fragnav/internal/config"
	"github.com/staranto/fragnav/internal/fetch"
	"github.com/staranto/fragnav/internal/meta"
	"github.com/staranto/fragnav/internal/output"
	"github.com/staranto/fragnav/internal/pathres"
	"github.com/staranto/fragnav/internal/site"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr fragnav-<subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "fragnav-"+subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpColumnsIfRequested prints the command's columns when --schema is set,
// and returns true if it handled the request.
func DumpColumnsIfRequested(cmd *cli.Command, columns []string) bool {
	if cmd.Bool("schema") {
		output.DumpColumns(cmd.Root().Writer, cmd.Name, columns)
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// resolverFor returns the path resolver for the command's site.
func resolverFor(cmd *cli.Command) pathres.Resolver {
	m := GetMeta(cmd)
	return pathres.Resolver{Base: cmd.String("base"), Entry: m.Entry}
}

// siteOptions returns the site options with the flag overrides applied.
func siteOptions(cmd *cli.Command) site.Options {
	opts := GetMeta(cmd).SiteOptions()
	opts.Base = cmd.String("base")
	return opts
}

// NewRetriever builds the retriever for --site, passing the s3 settings from
// the config file to the S3 backend.
func NewRetriever(ctx context.Context, cmd *cli.Command) (fetch.Retriever, error) {
	root := cmd.String("site")
	log.Debugf("site root: %s", root)

	profile, _ := config.GetString("s3.profile", "")
	region, _ := config.GetString("s3.region", "")
	endpoint, _ := config.GetString("s3.endpoint", "")

	r, err := fetch.New(ctx, root,
		awsx.WithProfile(profile),
		awsx.WithRegion(region),
		awsx.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open site %s: %w", root, err)
	}
	return r, nil
}

// OpenSite opens location on the command's site. An empty location opens
// the entry page.
func OpenSite(ctx context.Context, cmd *cli.Command, location string) (*site.Context, error) {
	r, err := NewRetriever(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if location == "" {
		location = resolverFor(cmd).EntryLocation()
	}
	return site.Open(ctx, r, location, siteOptions(cmd))
}

// CommandBuilder constructs a cli.Command for the table-emitting commands
// using a consistent pattern: metadata, tldr/schema flags, the global flags
// and the global validator.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: append(b.Flags, append([]cli.Flag{
			newTldrFlag(),
			newSchemaFlag(),
			NewSiteFlag(b.Name, b.Meta.Config.Source),
			NewBaseFlag(b.Meta.Config.Source),
		}, NewGlobalFlags(b.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: b.Action,
	}
}
