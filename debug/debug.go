// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package debug provides destinations for the Debug rendering of an evtree
// tree: indented text, optionally colored, and a log.
package debug

import (
	"io"
	"os"
	"strings"

	"github.com/creachadair/evtree"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"
)

// Text writes debug lines to an io.Writer, indenting each line by its depth.
// It implements the [evtree.DebugSink] interface.
type Text struct {
	w      io.Writer
	indent string
	colors map[string]*color.Color
}

// NewText constructs a Text sink that writes to w, indenting by two spaces
// per level. Colors are enabled if w is a terminal.
func NewText(w io.Writer) *Text {
	t := &Text{
		w:      w,
		indent: "  ",
		colors: map[string]*color.Color{
			evtree.StreamStart.String():   color.New(color.Bold),
			evtree.StreamEnd.String():     color.New(color.Bold),
			evtree.DocumentStart.String(): color.New(color.FgMagenta),
			evtree.DocumentEnd.String():   color.New(color.FgMagenta),
			evtree.MappingStart.String():  color.New(color.FgBlue),
			evtree.MappingEnd.String():    color.New(color.FgBlue),
			evtree.SequenceStart.String(): color.New(color.FgCyan),
			evtree.SequenceEnd.String():   color.New(color.FgCyan),
			evtree.Scalar.String():        color.New(color.FgGreen),
			evtree.Alias.String():         color.New(color.FgYellow),
		},
	}
	f, ok := w.(*os.File)
	t.SetColor(ok && isatty.IsTerminal(f.Fd()))
	return t
}

// SetColor enables (true) or disables (false) colored output.
func (t *Text) SetColor(on bool) {
	for _, c := range t.colors {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// SetIndent sets the string written once per level of depth.
func (t *Text) SetIndent(indent string) { t.indent = indent }

// DebugLine implements the [evtree.DebugSink] interface.
func (t *Text) DebugLine(depth int, text string) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(t.indent, max(depth, 0)))

	// Only the event kind is colored.
	kind, rest, _ := strings.Cut(text, " ")
	if c, ok := t.colors[kind]; ok {
		sb.WriteString(c.Sprint(kind))
	} else {
		sb.WriteString(kind)
	}
	if rest != "" {
		sb.WriteByte(' ')
		sb.WriteString(rest)
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(t.w, sb.String())
	return err
}

// Log writes debug lines to a logger at debug level.
// It implements the [evtree.DebugSink] interface.
type Log struct {
	log    commonlog.Logger
	indent string
}

// NewLog constructs a Log sink that writes to log. If log == nil, the
// logger named "evtree.debug" is used.
func NewLog(log commonlog.Logger) *Log {
	if log == nil {
		log = commonlog.GetLogger("evtree.debug")
	}
	return &Log{log: log, indent: "  "}
}

// DebugLine implements the [evtree.DebugSink] interface.
func (l *Log) DebugLine(depth int, text string) error {
	l.log.Debugf("%s%s", strings.Repeat(l.indent, max(depth, 0)), text)
	return nil
}
