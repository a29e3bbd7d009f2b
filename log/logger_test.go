// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandlerLevels(t *testing.T) {
	var (
		out   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(&out, &level, false))

	l.Debug("hidden")
	assert.Empty(t, out.String())

	l.Info("pool added", "points", 100, "reward", big.NewInt(1234567))
	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO "))
	assert.Contains(t, line, "pool added")
	assert.Contains(t, line, "points=100")
	assert.Contains(t, line, "reward=1,234,567")

	out.Reset()
	level.Set(LevelTrace)
	l.Trace("visible")
	assert.Contains(t, out.String(), "visible")
}

func TestJSONHandler(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(JSONHandler(&out))
	l.Warn("claim", "amount", big.NewInt(42))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "warn", rec["lvl"])
	assert.Equal(t, "42", rec["amount"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	l := WithContext("pkg", "test")

	var out bytes.Buffer
	SetDefault(NewLogger(NewTerminalHandler(&out, false)))
	l.Info("hello")
	assert.Contains(t, out.String(), "pkg=test")
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"trace", "debug", "info", "warn", "error", "crit"} {
		lvl, ok := ParseLevel(name)
		require.True(t, ok, name)
		assert.Equal(t, name, LevelString(lvl))
	}
	_, ok := ParseLevel("loud")
	assert.False(t, ok)

	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}

func TestAppendUint64(t *testing.T) {
	assert.Equal(t, "99999", string(appendUint64(nil, 99999, false)))
	assert.Equal(t, "1,000,000", string(appendUint64(nil, 1000000, false)))
	assert.Equal(t, "-123,456", string(appendInt64(nil, -123456)))
}

func TestRootLoggerUsableAfterInit(t *testing.T) {
	require.NotPanics(t, func() {
		Root().Info("root ready")
		WithContext("pkg", "test").Debug("package logger ready")
	})

	prev := Root()
	defer SetDefault(prev)

	var out bytes.Buffer
	require.NotPanics(t, func() { SetDefault(NewLogger(NewTerminalHandler(&out, false))) })
	Root().Info("replaced")
	assert.Contains(t, out.String(), "replaced")
}
