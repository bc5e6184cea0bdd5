// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package debug_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/evtree"
	"github.com/creachadair/evtree/debug"
	"github.com/creachadair/evtree/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/tliron/commonlog"
)

func mustBuild(t *testing.T, input string) *evtree.Tree {
	t.Helper()
	tree, err := evtree.Build(evtree.SliceSource(testutil.Events(input)))
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree
}

func TestText(t *testing.T) {
	tree := mustBuild(t, "+STR +DOC +MAP =name =Bob =ids +SEQ =1 -SEQ -MAP -DOC -STR")

	var buf bytes.Buffer
	if err := tree.Debug(debug.NewText(&buf)); err != nil {
		t.Fatalf("Debug: unexpected error: %v", err)
	}
	const want = `stream-start
  document-start
    mapping-start
      scalar "name"
      scalar "Bob"
      scalar "ids"
      sequence-start
        scalar "1"
      sequence-end
    mapping-end
  document-end
stream-end
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Text output (-want, +got):\n%s", diff)
	}
}

func TestTextIndent(t *testing.T) {
	tree := mustBuild(t, "+STR +DOC =x -DOC -STR")

	var buf bytes.Buffer
	txt := debug.NewText(&buf)
	txt.SetIndent("| ")
	if err := tree.Debug(txt); err != nil {
		t.Fatalf("Debug: unexpected error: %v", err)
	}
	const want = "stream-start\n| document-start\n| | scalar \"x\"\n| document-end\nstream-end\n"
	if got := buf.String(); got != want {
		t.Errorf("Text output: got %q, want %q", got, want)
	}
}

func TestTextColor(t *testing.T) {
	var buf bytes.Buffer
	txt := debug.NewText(&buf)
	txt.SetColor(true)
	if err := txt.DebugLine(1, `scalar "v"`); err != nil {
		t.Fatalf("DebugLine: unexpected error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored output has no escape sequences: %q", got)
	}
	if !strings.HasPrefix(got, "  ") || !strings.HasSuffix(got, ` "v"`+"\n") {
		t.Errorf("Colored output is malformed: %q", got)
	}

	buf.Reset()
	txt.SetColor(false)
	txt.DebugLine(0, "alias *x")
	if got, want := buf.String(), "alias *x\n"; got != want {
		t.Errorf("Uncolored output: got %q, want %q", got, want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("write failed") }

func TestTextError(t *testing.T) {
	tree := mustBuild(t, "+STR -STR")
	if err := tree.Debug(debug.NewText(failWriter{})); err == nil {
		t.Error("Debug: got nil error, want error")
	}
}

// logRecorder captures debug messages. Other commonlog.Logger methods are
// not used by the Log sink.
type logRecorder struct {
	commonlog.Logger
	lines []string
}

func (r *logRecorder) Debugf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestLog(t *testing.T) {
	tree := mustBuild(t, "+STR +DOC +SEQ =a -SEQ -DOC -STR")

	rec := new(logRecorder)
	if err := tree.Debug(debug.NewLog(rec)); err != nil {
		t.Fatalf("Debug: unexpected error: %v", err)
	}
	want := []string{
		"stream-start",
		"  document-start",
		"    sequence-start",
		`      scalar "a"`,
		"    sequence-end",
		"  document-end",
		"stream-end",
	}
	if diff := cmp.Diff(want, rec.lines); diff != "" {
		t.Errorf("Log output (-want, +got):\n%s", diff)
	}
}

func TestLogDefault(t *testing.T) {
	// The default logger accepts lines without a configured backend.
	if err := debug.NewLog(nil).DebugLine(0, "stream-start"); err != nil {
		t.Errorf("DebugLine: unexpected error: %v", err)
	}
}
