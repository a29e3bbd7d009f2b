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
	"context"
	"log/slog"
	"os"
)

// wrapped resolves the root logger on each call.
type wrapped struct {
	l *lazyLogger
}

func (w *wrapped) With(ctx ...any) Logger {
	merged := append(append([]any{}, w.l.ctx...), ctx...)
	return &wrapped{&lazyLogger{ctx: merged}}
}

func (w *wrapped) New(ctx ...any) Logger { return w.With(ctx...) }

func (w *wrapped) Log(level slog.Level, msg string, ctx ...any) {
	w.l.current().Write(level, msg, ctx...)
}

func (w *wrapped) Trace(msg string, ctx ...any) { w.l.current().Write(LevelTrace, msg, ctx...) }
func (w *wrapped) Debug(msg string, ctx ...any) { w.l.current().Write(slog.LevelDebug, msg, ctx...) }
func (w *wrapped) Info(msg string, ctx ...any)  { w.l.current().Write(slog.LevelInfo, msg, ctx...) }
func (w *wrapped) Warn(msg string, ctx ...any)  { w.l.current().Write(slog.LevelWarn, msg, ctx...) }
func (w *wrapped) Error(msg string, ctx ...any) { w.l.current().Write(slog.LevelError, msg, ctx...) }

func (w *wrapped) Crit(msg string, ctx ...any) {
	w.l.current().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

func (w *wrapped) Write(level slog.Level, msg string, attrs ...any) {
	w.l.current().Write(level, msg, attrs...)
}

func (w *wrapped) Enabled(ctx context.Context, level slog.Level) bool {
	return w.l.current().Enabled(ctx, level)
}

func (w *wrapped) Handler() slog.Handler {
	return w.l.current().Handler()
}
