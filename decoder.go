// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
)

// maxLineLength bounds a single line read by the Decoder. File128 event
// lines are about 200 characters; remarks can be longer.
const maxLineLength = 1 << 20

// Decoder reads a CMX 3600 EDL and produces an EditList.
type Decoder struct {
	r        io.Reader
	tolerant bool
	logger   *slog.Logger
}

// NewDecoder creates a new EDL decoder.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// SetTolerant sets whether event lines that fail fixed-column decoding are
// recovered by pattern matching instead of being left unrecognized.
func (d *Decoder) SetTolerant(tolerant bool) {
	d.tolerant = tolerant
}

// SetLogger sets a logger that receives a debug record for every line that
// was not recognized, was recovered in tolerant mode, or is a corrupt
// remark. The decoder is silent without one.
func (d *Decoder) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

// Decode reads all lines and returns the edit list. It fails if the input
// cannot be read or does not start with a TITLE: line.
func (d *Decoder) Decode() (*EditList, error) {
	lines, err := readLines(d.r)
	if err != nil {
		return nil, err
	}
	stmts := ParseStatements(lines, d.tolerant)
	if d.logger != nil {
		d.logStatements(stmts)
	}
	return NewEditList(stmts)
}

// ParseLines parses an edit list from lines without their line endings.
func ParseLines(lines []string, tolerant bool) (*EditList, error) {
	return NewEditList(ParseStatements(lines, tolerant))
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (d *Decoder) logStatements(stmts []Statement) {
	for _, s := range stmts {
		switch st := s.(type) {
		case UnrecognizedStatement:
			d.logger.Debug("unrecognized line", "line", st.Line, "content", st.Content)
		case CorruptRemarkStatement:
			d.logger.Debug("corrupt remark", "line", st.Line, "tag", st.Tag, "text", st.Text)
		case EventStatement:
			if st.SourceFieldSize == 0 {
				d.logger.Debug("recovered event line", "line", st.Line, "event", st.Event)
			}
		}
	}
}
