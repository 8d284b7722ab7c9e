// SPDX-License-Identifier: Unlicense OR MIT

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogCastErrorTransientLogsWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Output: &buf})

	LogCastError(log, CastErrorTransient, "sess-1", errBoom)

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn level, got %q", out)
	}
	if !strings.Contains(out, "sess-1") {
		t.Errorf("expected session id in output, got %q", out)
	}
}

func TestLogCastErrorFatalLogsError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Output: &buf})

	LogCastError(log, CastErrorFatal, "sess-2", errBoom)

	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("expected error level, got %q", buf.String())
	}
}

func TestLogCastErrorProtocolViolationIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Output: &buf})

	LogCastError(log, CastErrorProtocolViolation, "sess-3", errBoom)

	if buf.Len() != 0 {
		t.Errorf("expected no output for a protocol violation, got %q", buf.String())
	}
}

func TestNewRespectsDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Output: &buf, Debug: false})
	log.Debug().Msg("should not appear")
	if buf.Len() != 0 {
		t.Errorf("debug message should be suppressed at info level, got %q", buf.String())
	}

	buf.Reset()
	log = New(Options{JSON: true, Output: &buf, Debug: true})
	log.Debug().Msg("should appear")
	if buf.Len() == 0 {
		t.Error("debug message should appear when Debug is set")
	}
}

var errBoom = boomError{}

type boomError struct{}

func (boomError) Error() string { return "boom" }
