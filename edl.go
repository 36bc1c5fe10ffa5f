// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package cmx3600 parses CMX 3600 EDL (Edit Decision List) files.
//
// Parsing happens in two stages. Every line is first classified into a typed
// Statement. The statements are then grouped into Events, which decompose on
// demand into Edits: the finished view of one source-to-record operation with
// its channels, transition, timecodes, clip name, source file and color
// decisions.
//
// The classic 8-character source column and the File32 and File128 dialects
// with wider source columns are all read; the width is detected per line.
package cmx3600

import (
	"errors"
	"fmt"
)

// Format is the dialect of an edit list, as told by the width of the source
// column of its first event line.
type Format string

const (
	Format3600    Format = "3600"
	FormatFile32  Format = "File32"
	FormatFile128 Format = "File128"
	FormatUnknown Format = "unknown"
)

// ErrMissingTitle is reported when the first line of a list is not a
// TITLE: statement.
var ErrMissingTitle = errors.New("expected TITLE: statement")

// ParseError represents an error that occurred during EDL parsing.
type ParseError struct {
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EditList is a parsed edit decision list. It is immutable and safe for
// concurrent readers.
type EditList struct {
	title      TitleStatement
	statements []Statement
}

// NewEditList builds an edit list from a statement stream whose first
// statement must be the title.
func NewEditList(statements []Statement) (*EditList, error) {
	if len(statements) == 0 {
		return nil, &ParseError{Line: 0, Message: "empty edit list", Err: ErrMissingTitle}
	}
	title, ok := statements[0].(TitleStatement)
	if !ok {
		return nil, &ParseError{
			Line:    statements[0].LineNumber(),
			Message: fmt.Sprintf("%s, found %s", ErrMissingTitle, statements[0].Kind()),
			Err:     ErrMissingTitle,
		}
	}
	rest := make([]Statement, len(statements)-1)
	copy(rest, statements[1:])
	return &EditList{title: title, statements: rest}, nil
}

// Title is the text of the TITLE: line.
func (l *EditList) Title() string { return l.title.Title }

// TitleStatement returns the TITLE: statement.
func (l *EditList) TitleStatement() TitleStatement { return l.title }

// Statements returns a copy of every statement after the title.
func (l *EditList) Statements() []Statement {
	out := make([]Statement, len(l.statements))
	copy(out, l.statements)
	return out
}

// Format reports the dialect from the first event line of the list.
func (l *EditList) Format() Format {
	for _, s := range l.statements {
		ev, ok := s.(EventStatement)
		if !ok {
			continue
		}
		switch ev.SourceFieldSize {
		case 8:
			return Format3600
		case 32:
			return FormatFile32
		case 128:
			return FormatFile128
		default:
			return FormatUnknown
		}
	}
	return FormatUnknown
}

// DropFrame reports the frame count mode of the first FCM: line, and false
// if there is none.
func (l *EditList) DropFrame() bool {
	for _, s := range l.statements {
		if fcm, ok := s.(FCMStatement); ok {
			return fcm.Drop
		}
	}
	return false
}

// Events groups the statements into events. A new event starts at every
// event line whose number differs from the one before it; every other
// statement belongs to the event in progress, and statements before the
// first event line belong to the first event. A list without event lines
// has no events. Each call returns a fresh slice with the same contents.
func (l *EditList) Events() []*Event {
	var (
		events    []*Event
		group     []Statement
		current   string
		started   bool
		drop      bool
		groupDrop bool
	)

	for _, s := range l.statements {
		switch st := s.(type) {
		case FCMStatement:
			drop = st.Drop
			group = append(group, s)
		case EventStatement:
			if started && st.Event != current {
				events = append(events, newEvent(group, groupDrop))
				group = nil
			}
			if !started || st.Event != current {
				groupDrop = drop
			}
			started = true
			current = st.Event
			group = append(group, s)
		default:
			group = append(group, s)
		}
	}
	if started {
		events = append(events, newEvent(group, groupDrop))
	}
	return events
}

// Edits returns the edits of every event in order.
func (l *EditList) Edits() []Edit {
	var edits []Edit
	for _, ev := range l.Events() {
		edits = append(edits, ev.Edits()...)
	}
	return edits
}

// Channels returns the union of the channels of every edit in the list.
func (l *EditList) Channels() ChannelMap {
	var c ChannelMap
	for _, e := range l.Edits() {
		c = c.Union(e.Channels())
	}
	return c
}

// UnrecognizedStatements returns the unrecognized lines and the corrupt
// remarks of the list.
func (l *EditList) UnrecognizedStatements() []Statement {
	var out []Statement
	for _, s := range l.statements {
		switch s.(type) {
		case UnrecognizedStatement, CorruptRemarkStatement:
			out = append(out, s)
		}
	}
	return out
}

// Sources returns the ">>> SOURCE" statements of the list.
func (l *EditList) Sources() []SourceUMIDStatement {
	return statementsOf[SourceUMIDStatement](l.statements)
}
