// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
)

// Dir retrieves fragments from a file system, the way a static file server
// would: missing files are 404 and directories serve their index.html.
type Dir struct {
	fsys fs.FS
}

// NewDir returns a Dir rooted at the local directory root.
func NewDir(root string) *Dir {
	return &Dir{fsys: os.DirFS(root)}
}

// NewFS returns a Dir over an arbitrary fs.FS.
func NewFS(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// Retrieve reads path from the file system.
func (d *Dir) Retrieve(ctx context.Context, p string) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	name := fsName(p)
	info, err := fs.Stat(d.fsys, name)
	if err == nil && info.IsDir() {
		name = path.Join(name, "index.html")
	}

	data, err := fs.ReadFile(d.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Response{Status: http.StatusNotFound}, nil
	case errors.Is(err, fs.ErrPermission):
		return Response{Status: http.StatusForbidden}, nil
	case err != nil:
		return Response{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return Response{Status: http.StatusOK, Body: string(data)}, nil
}

// Pages lists every .html file as a site-absolute path, sorted.
func (d *Dir) Pages() ([]string, error) {
	var pages []string
	err := fs.WalkDir(d.fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.EqualFold(path.Ext(p), ".html") {
			pages = append(pages, "/"+p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	sort.Strings(pages)
	return pages, nil
}

// fsName turns a site path into an fs.FS name: no leading slash, no query,
// cleaned so it cannot climb above the root.
func fsName(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" {
		return "."
	}
	return name
}
