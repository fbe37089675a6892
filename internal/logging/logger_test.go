package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

type recordingLogger struct {
	lines *[]string
}

func (r recordingLogger) Debugf(format string, args ...any) { *r.lines = append(*r.lines, "debug:"+format) }
func (r recordingLogger) Infof(format string, args ...any)  { *r.lines = append(*r.lines, "info:"+format) }
func (r recordingLogger) Warnf(format string, args ...any)  { *r.lines = append(*r.lines, "warn:"+format) }
func (r recordingLogger) Errorf(format string, args ...any) { *r.lines = append(*r.lines, "error:"+format) }
func (r recordingLogger) WithField(key string, value any) Logger {
	return r
}

type recordingFactory struct {
	lines []string
}

func (f *recordingFactory) CreateLogger(ctx context.Context) Logger {
	return recordingLogger{lines: &f.lines}
}

func TestConfigureVerbosity(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, false)
	t.Cleanup(func() { Configure(&bytes.Buffer{}, false) })

	log := NewLogger(context.Background())
	log.Debugf("hidden %d", 1)
	log.Warnf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug output should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("Expected warning in output, got %q", out)
	}

	buf.Reset()
	Configure(&buf, true)
	NewLogger(context.Background()).WithField("card", 1001).Debugf("selected %d clips", 3)

	out = buf.String()
	if !strings.Contains(out, "selected 3 clips") || !strings.Contains(out, "card=1001") {
		t.Errorf("Expected debug output with field, got %q", out)
	}
}

func TestLoggerFactory(t *testing.T) {
	factory := &recordingFactory{}
	SetLoggerFactory(factory)
	t.Cleanup(func() { SetLoggerFactory(nil) })

	if GetLoggerFactory() != factory {
		t.Fatal("GetLoggerFactory() did not return the configured factory")
	}

	NewLogger(context.Background()).Infof("hello")
	if len(factory.lines) != 1 || factory.lines[0] != "info:hello" {
		t.Errorf("Expected factory logger to be used, got %v", factory.lines)
	}
}

func TestSetOutputKeepsLevel(t *testing.T) {
	var first, second bytes.Buffer
	Configure(&first, true)
	t.Cleanup(func() { Configure(&bytes.Buffer{}, false) })

	SetOutput(&second)
	if Output() != &second {
		t.Fatal("Output() should return the writer passed to SetOutput")
	}

	NewLogger(context.Background()).Debugf("still verbose")
	if !strings.Contains(second.String(), "still verbose") {
		t.Errorf("Expected debug message in new output, got %q", second.String())
	}
	if first.Len() != 0 {
		t.Errorf("Old output should stay empty, got %q", first.String())
	}
}
