// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package fetch implements the retrieval boundary: given a path it returns a
// status and the body as text, or a transport error. Sites can be read from a
// local directory, an HTTP(S) origin, or an S3 bucket.
package fetch
