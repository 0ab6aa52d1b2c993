// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"
)

// HTTP retrieves fragments from a web origin. Site-absolute paths are
// resolved beneath the base URL's path.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns an HTTP Retriever for base. A nil client gets a pooled
// go-cleanhttp client.
func NewHTTP(base string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &HTTP{base: u, client: client}, nil
}

// Retrieve GETs path. Only transport failures are errors; the status is
// reported as-is.
func (h *HTTP) Retrieve(ctx context.Context, path string) (Response, error) {
	target, err := h.target(path)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}
	log.Debugf("fetch: GET %s -> %d (%d bytes)", target, resp.StatusCode, doc.Len())

	return Response{Status: resp.StatusCode, Body: doc.String()}, nil
}

func (h *HTTP) target(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return path, nil
	}
	ref.Path = strings.TrimPrefix(ref.Path, "/")
	return h.base.ResolveReference(ref).String(), nil
}
