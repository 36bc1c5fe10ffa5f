// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

// Widths of everything on a standard form line after the event number and
// the source column are fixed. They add up to eventLineFixedWidth.
const (
	separatorAfterEvent = 2
	channelWidth        = 4
	transitionWidth     = 4
	operandWidth        = 3
	timecodeWidth       = 11

	eventLineFixedWidth = separatorAfterEvent + 1 + // source and its trailing space
		channelWidth + 2 +
		transitionWidth + 1 +
		operandWidth + 1 +
		4*timecodeWidth + 3
)

// Indexes of the data columns in the slice returned by collimate for
// columnWidths. Odd positions are separators.
const (
	colEvent     = 0
	colSource    = 2
	colChannels  = 4
	colTrans     = 6
	colTransOp   = 8
	colSourceIn  = 10
	colSourceOut = 12
	colRecordIn  = 14
	colRecordOut = 16
)

// columnWidths returns the widths of every column, separators included, of
// a standard form event line.
func columnWidths(eventWidth, sourceWidth int) []int {
	return []int{
		eventWidth, separatorAfterEvent,
		sourceWidth, 1,
		channelWidth, 2,
		transitionWidth, 1,
		operandWidth, 1,
		timecodeWidth, 1,
		timecodeWidth, 1,
		timecodeWidth, 1,
		timecodeWidth,
	}
}

// collimate splits s into consecutive slices of the given widths. The result
// always has len(widths) elements; columns past the end of s are empty and a
// column crossing the end of s is truncated.
func collimate(s string, widths []int) []string {
	out := make([]string, len(widths))
	pos := 0
	for i, w := range widths {
		if pos >= len(s) {
			break
		}
		end := min(pos+w, len(s))
		out[i] = s[pos:end]
		pos = end
	}
	return out
}
