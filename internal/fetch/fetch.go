// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"

	awsx "github.com/staranto/fragnav/internal/aws"
)

// ErrStatus is returned by helpers that require a success status.
var ErrStatus = errors.New("unexpected status")

// Response is the outcome of a completed retrieval.
type Response struct {
	Status int
	Body   string
}

// OK reports whether the status is in the 2xx class.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Retriever fetches the resource at path. An error means the transport
// failed; any status the origin answered with is reported in the Response.
type Retriever interface {
	Retrieve(ctx context.Context, path string) (Response, error)
}

// Func adapts a function to the Retriever interface.
type Func func(ctx context.Context, path string) (Response, error)

// Retrieve calls f.
func (f Func) Retrieve(ctx context.Context, path string) (Response, error) {
	return f(ctx, path)
}

// New picks a Retriever for root by its scheme: http(s) origins, s3://bucket/
// prefix, or anything else as a local directory.
func New(ctx context.Context, root string, opts ...awsx.Option) (Retriever, error) {
	u, err := url.Parse(root)
	// Windows drive letters parse as a one letter scheme.
	if err != nil || len(u.Scheme) <= 1 {
		log.Debugf("fetch: directory site %s", root)
		return NewDir(root), nil
	}

	switch u.Scheme {
	case "http", "https":
		log.Debugf("fetch: http site %s", root)
		return NewHTTP(root, nil)
	case "s3":
		log.Debugf("fetch: s3 site bucket=%s prefix=%s", u.Host, u.Path)
		return NewS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), opts...)
	case "file":
		return NewDir(u.Path), nil
	}

	return nil, fmt.Errorf("unsupported site root scheme %q", u.Scheme)
}

// Get retrieves path and converts a non-2xx status into an error wrapping
// ErrStatus.
func Get(ctx context.Context, r Retriever, path string) (string, error) {
	resp, err := r.Retrieve(ctx, path)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("%s: %w %d (%s)", path, ErrStatus, resp.Status, http.StatusText(resp.Status))
	}
	return resp.Body, nil
}

// RelativeTo returns a Retriever that resolves relative paths against the
// page location the way a browser resolves relative URLs, then delegates to
// next with the site-absolute path. Absolute URLs pass through untouched.
func RelativeTo(next Retriever, page string) Retriever {
	if !strings.HasPrefix(page, "/") {
		page = "/" + page
	}
	return &relative{next: next, base: &url.URL{Path: page}}
}

type relative struct {
	next Retriever
	base *url.URL
}

func (r *relative) Retrieve(ctx context.Context, path string) (Response, error) {
	resolved, err := Resolve(r.base.Path, path)
	if err != nil {
		return Response{}, err
	}
	return r.next.Retrieve(ctx, resolved)
}

// Resolve resolves ref against the page path. The result is site-absolute
// (leading slash) unless ref is itself an absolute URL.
func Resolve(page string, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", ref, err)
	}
	if refURL.IsAbs() {
		return ref, nil
	}

	if !strings.HasPrefix(page, "/") {
		page = "/" + page
	}
	resolved := (&url.URL{Path: page}).ResolveReference(refURL)

	out := resolved.Path
	if resolved.RawQuery != "" {
		out += "?" + resolved.RawQuery
	}
	return out, nil
}

// Under returns a Retriever for a site served below base, e.g. "/campus/".
// Site-absolute paths under base are passed to next with base removed; other
// paths pass through unchanged.
func Under(next Retriever, base string) Retriever {
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		return next
	}
	return Func(func(ctx context.Context, p string) (Response, error) {
		if p == base || strings.HasPrefix(p, base+"/") {
			p = "/" + strings.TrimPrefix(strings.TrimPrefix(p, base), "/")
		}
		return next.Retrieve(ctx, p)
	})
}
