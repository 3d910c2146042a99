// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	lv, err := ParseLevel("DEBUG")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lv)

	lv, err = ParseLevel("warning")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lv)

	lv, err = ParseLevel("")
	assert.NoError(t, err)
	assert.Equal(t, UserLevel, lv)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, UserLevel, LevelFromFlags(false, false, false))
}

func TestNewLogger(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()

	UserLevel = slog.LevelWarn
	var buf bytes.Buffer
	lg := NewLogger(&buf)
	lg.Info("hidden")
	lg.Warn("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "n=1")
}
