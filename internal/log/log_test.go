// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	e := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "no header element found",
		Timestamp: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		Fields:    log.Fields{"path": "COMPONENTS/header.html"},
	}

	assert.NoError(t, h.HandleLog(e))
	assert.Equal(t,
		"2025-03-04 05:06:07 W no header element found path=COMPONENTS/header.html\n",
		buf.String())
}
