// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type testWriter struct {
	test testing.TB
}

var _ io.Writer = (*testWriter)(nil)

func (w *testWriter) Write(b []byte) (int, error) {
	s := string(b)
	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
	}
	w.test.Log(s)
	return len(b), nil
}

// NewTestLogger returns a logger that writes to the test's log.
func NewTestLogger(t testing.TB) Logger {
	w := zerolog.ConsoleWriter{Out: &testWriter{test: t}, NoColor: true}
	return zeroLogger{zerolog.New(w)}
}
