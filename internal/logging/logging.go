// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/meridianledger/meridian/pkg/errors"
)

const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// Logger is a keyvals logger.
type Logger interface {
	Debug(msg string, keyVals ...interface{})
	Info(msg string, keyVals ...interface{})
	Error(msg string, keyVals ...interface{})
	With(keyVals ...interface{}) Logger
}

// New returns a zerolog-backed logger writing to w.
func New(w io.Writer, format, level string) (Logger, error) {
	switch strings.ToLower(format) {
	case LogFormatPlain, "text", "":
		w = zerolog.ConsoleWriter{Out: w}
	case LogFormatJSON:
		// Ok
	default:
		return nil, errors.BadRequest.WithFormat("unsupported log format %q", format)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("unsupported log level %q", level)
	}

	return zeroLogger{zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

type zeroLogger struct {
	l zerolog.Logger
}

func (z zeroLogger) Debug(msg string, keyVals ...interface{}) {
	event(z.l.Debug(), keyVals).Msg(msg)
}

func (z zeroLogger) Info(msg string, keyVals ...interface{}) {
	event(z.l.Info(), keyVals).Msg(msg)
}

func (z zeroLogger) Error(msg string, keyVals ...interface{}) {
	event(z.l.Error(), keyVals).Msg(msg)
}

func (z zeroLogger) With(keyVals ...interface{}) Logger {
	c := z.l.With()
	for i := 0; i+1 < len(keyVals); i += 2 {
		c = c.Interface(fmt.Sprint(keyVals[i]), keyVals[i+1])
	}
	return zeroLogger{c.Logger()}
}

func event(e *zerolog.Event, keyVals []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keyVals); i += 2 {
		e = e.Interface(fmt.Sprint(keyVals[i]), keyVals[i+1])
	}
	return e
}
