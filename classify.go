// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import (
	"regexp"
	"strings"
)

// Line prefixes recognized by ParseLine, in dispatch order.
const (
	prefixTitle       = "TITLE:"
	prefixFCM         = "FCM:"
	prefixAudioExt    = "AUD"
	prefixRemark      = "*"
	prefixSourceUMID  = ">>> SOURCE"
	prefixEffectsName = "EFFECTS NAME IS"
	prefixSplit       = "SPLIT:"
)

const dropFrame = "DROP FRAME"

// eventNumberRegex locates the event number at the start of a standard form
// line. Classic lists use three digits, long form lists six.
var eventNumberRegex = regexp.MustCompile(`^([0-9]+)  `)

// tolerantEventRegex recovers event lines whose columns are not aligned.
var tolerantEventRegex = regexp.MustCompile(
	`^([0-9]+)\s+(.{8,128}?)\s+` +
		`(V|A|A2|AA|NONE|AA/V|A2/V|B)\s+` +
		`(C|D|W[0-9]*|KB|K|KO)\s+` +
		`([0-9]*)\s*` +
		`([0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2})\s+` +
		`([0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2})\s+` +
		`([0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2})\s+` +
		`([0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2}[:;.][0-9]{2})\s*$`)

// ParseLine classifies one line of an EDL. The line is trimmed of
// surrounding whitespace first. When tolerant is set, event lines whose
// columns do not line up are recovered with a pattern match instead of
// being reported as unrecognized.
func ParseLine(line string, lineNumber int, tolerant bool) Statement {
	line = strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(line, prefixTitle):
		return TitleStatement{
			Title: strings.TrimSpace(line[len(prefixTitle):]),
			Line:  lineNumber,
		}
	case strings.HasPrefix(line, prefixFCM):
		return FCMStatement{
			Drop: strings.TrimSpace(line[len(prefixFCM):]) == dropFrame,
			Line: lineNumber,
		}
	case eventNumberRegex.MatchString(line):
		return parseEventLine(line, lineNumber, tolerant)
	case strings.HasPrefix(line, prefixAudioExt):
		return parseAudioExt(line, lineNumber)
	case strings.HasPrefix(line, prefixRemark):
		return parseRemark(strings.TrimSpace(line[len(prefixRemark):]), lineNumber)
	case strings.HasPrefix(line, prefixSourceUMID):
		return SourceUMIDStatement{Text: line, Line: lineNumber}
	case strings.HasPrefix(line, prefixEffectsName):
		return EffectsNameStatement{
			Name: strings.TrimSpace(line[len(prefixEffectsName):]),
			Line: lineNumber,
		}
	case strings.HasPrefix(line, prefixSplit):
		return parseSplitEdit(line, lineNumber)
	default:
		return UnrecognizedStatement{Content: line, Line: lineNumber}
	}
}

// ParseStatements classifies every line in order. The result has exactly
// one statement per line.
func ParseStatements(lines []string, tolerant bool) []Statement {
	stmts := make([]Statement, len(lines))
	for i, line := range lines {
		stmts[i] = ParseLine(line, i, tolerant)
	}
	return stmts
}

func parseEventLine(line string, lineNumber int, tolerant bool) Statement {
	m := eventNumberRegex.FindStringSubmatch(line)
	eventWidth := len(m[1])

	if stmt, ok := parseColumns(line, lineNumber, eventWidth); ok {
		return stmt
	}
	if tolerant {
		if stmt, ok := parseTolerant(line, lineNumber); ok {
			return stmt
		}
	}
	return UnrecognizedStatement{Content: line, Line: lineNumber}
}

// parseColumns decodes a standard form line by its fixed columns. The
// source column takes whatever width is left once the event number and the
// fixed-width fields are accounted for. The line is rejected when a
// separator column holds text or the channel or transition column is empty.
func parseColumns(line string, lineNumber, eventWidth int) (EventStatement, bool) {
	sourceWidth := len(line) - (eventWidth + eventLineFixedWidth)
	if sourceWidth < 1 {
		return EventStatement{}, false
	}

	cols := collimate(line, columnWidths(eventWidth, sourceWidth))
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
		// Separators must be blank or the columns do not line up.
		if i%2 == 1 && cols[i] != "" {
			return EventStatement{}, false
		}
	}
	if cols[colChannels] == "" || cols[colTrans] == "" {
		return EventStatement{}, false
	}

	return EventStatement{
		Event:           cols[colEvent],
		Source:          cols[colSource],
		Channels:        cols[colChannels],
		Trans:           cols[colTrans],
		TransOp:         cols[colTransOp],
		SourceIn:        cols[colSourceIn],
		SourceOut:       cols[colSourceOut],
		RecordIn:        cols[colRecordIn],
		RecordOut:       cols[colRecordOut],
		SourceFieldSize: sourceWidth,
		Line:            lineNumber,
	}, true
}

func parseTolerant(line string, lineNumber int) (EventStatement, bool) {
	m := tolerantEventRegex.FindStringSubmatch(line)
	if m == nil {
		return EventStatement{}, false
	}
	return EventStatement{
		Event:     m[1],
		Source:    strings.TrimSpace(m[2]),
		Channels:  m[3],
		Trans:     m[4],
		TransOp:   m[5],
		SourceIn:  m[6],
		SourceOut: m[7],
		RecordIn:  m[8],
		RecordOut: m[9],
		Line:      lineNumber,
	}, true
}

func parseAudioExt(line string, lineNumber int) Statement {
	rest := line[len(prefixAudioExt):]
	a3 := strings.Contains(rest, "3")
	a4 := strings.Contains(rest, "4")
	if !a3 && !a4 {
		return UnrecognizedStatement{Content: line, Line: lineNumber}
	}
	return AudioExtStatement{Audio3: a3, Audio4: a4, Line: lineNumber}
}

// parseSplitEdit reads lines of the form
//
//	SPLIT:    VIDEO DELAY=  00:00:00:10
func parseSplitEdit(line string, lineNumber int) Statement {
	rest := line[len(prefixSplit):]
	kind, delay, found := strings.Cut(rest, "DELAY=")
	if !found {
		kind, delay = rest, ""
	}
	return SplitEditStatement{
		Video: strings.Contains(kind, "VIDEO"),
		Delay: strings.TrimSpace(delay),
		Line:  lineNumber,
	}
}
