// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docgen turns docs/commands/<cmd>.md into a man page (md2man) and a tldr
// page built from the "Short description" paragraph and the first fenced
// block under "Quick examples".
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

const moreInfo = "https://github.com/staranto/fragnav"

func main() {
	root := flag.String("root", ".", "repo root")
	onlyIfChanged := flag.Bool("only-if-changed", true, "only write files if content changed")
	flag.Parse()

	n, err := generate(*root, *onlyIfChanged)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("generated docs for %d command(s)\n", n)
}

func generate(root string, onlyIfChanged bool) (int, error) {
	commandsDir := filepath.Join(root, "docs", "commands")
	manDir := filepath.Join(root, "docs", "man", "share", "man1")
	tldrDir := filepath.Join(root, "docs", "tldr")

	for _, dir := range []string{manDir, tldrDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return 0, fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			return processed, err
		}

		manPath := filepath.Join(manDir, "fragnav-"+cmd+".1")
		if err := writeFileIfChanged(manPath, md2man.Render(raw), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing man page for %s: %w", cmd, err)
		}

		tldr := buildTLDR(cmd, parseDoc(string(raw)))
		tldrPath := filepath.Join(tldrDir, "fragnav-"+cmd+".md")
		if err := writeFileIfChanged(tldrPath, []byte(tldr), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing tldr page for %s: %w", cmd, err)
		}
		processed++
	}

	if processed == 0 {
		return 0, fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return processed, nil
}

func writeFileIfChanged(path string, data []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		if err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(data)) {
			return nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

type example struct {
	Desc string
	Cmd  string
}

type doc struct {
	Title    string
	Short    string
	Examples []example
}

var h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)

func parseDoc(md string) doc {
	var d doc
	if m := h1Re.FindStringSubmatch(md); m != nil {
		d.Title = strings.TrimSpace(m[1])
	}
	d.Short = shortDescription(md)
	if d.Short == "" && d.Title != "" {
		d.Short = d.Title + "."
	}
	d.Examples = quickExamples(md)
	return d
}

// section returns the text after the line containing name, or "".
func section(md string, name string) string {
	idx := strings.Index(strings.ToLower(md), name)
	if idx < 0 {
		return ""
	}
	rest := md[idx:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		return rest[nl+1:]
	}
	return ""
}

func shortDescription(md string) string {
	var parts []string
	for _, ln := range strings.Split(section(md, "short description"), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(ln, "#") || strings.HasSuffix(ln, ":") {
			break
		}
		parts = append(parts, ln)
	}
	return strings.Join(parts, " ")
}

// quickExamples reads the first fenced block under "Quick examples". A
// comment line describes the command line that follows it.
func quickExamples(md string) []example {
	const fence = "```"
	rest := section(md, "quick examples")
	start := strings.Index(rest, fence)
	if start < 0 {
		return nil
	}
	rest = rest[start+len(fence):]
	// Drop the info string.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return nil
	}

	var exs []example
	var desc string
	for _, ln := range strings.Split(rest[:end], "\n") {
		ln = strings.TrimSpace(ln)
		switch {
		case ln == "":
		case strings.HasPrefix(ln, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(ln, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(ln), " ")})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd string, d doc) string {
	var b strings.Builder
	b.WriteString("# fragnav-" + cmd + "\n\n")
	switch {
	case d.Short != "":
		b.WriteString("> " + d.Short + "\n")
	default:
		b.WriteString("> fragnav " + cmd + "\n")
	}
	b.WriteString("> More information: " + moreInfo + ".\n\n")

	exs := d.Examples
	if len(exs) == 0 {
		exs = []example{{Desc: "Show help for the command", Cmd: "fragnav " + cmd + " --help"}}
	}
	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex.Desc + ":\n\n`" + ex.Cmd + "`\n")
	}
	return b.String()
}
