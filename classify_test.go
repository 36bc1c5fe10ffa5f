// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseLine_StandardForm(t *testing.T) {
	line := "001  BL              V     C        00:00:00:00 00:00:05:00 01:00:00:00 01:00:05:00"

	stmt := ParseLine(line, 4, false)
	ev, ok := stmt.(EventStatement)
	if !ok {
		t.Fatalf("ParseLine() = %T, want EventStatement", stmt)
	}

	want := EventStatement{
		Event:           "001",
		Source:          "BL",
		Channels:        "V",
		Trans:           "C",
		TransOp:         "",
		SourceIn:        "00:00:00:00",
		SourceOut:       "00:00:05:00",
		RecordIn:        "01:00:00:00",
		RecordOut:       "01:00:05:00",
		SourceFieldSize: 15,
		Line:            4,
	}
	if ev != want {
		t.Errorf("ParseLine() =\n%+v\nwant\n%+v", ev, want)
	}

	edits := NewEvent([]Statement{ev}).Edits()
	if len(edits) != 1 || !edits[0].Black() {
		t.Errorf("expected one black edit, got %+v", edits)
	}
}

func TestParseLine_SourceFieldSize(t *testing.T) {
	tcs := []string{"00:00:00:00", "00:00:05:00", "01:00:00:00", "01:00:05:00"}
	tests := []struct {
		name        string
		eventWidth  int
		sourceWidth int
	}{
		{name: "3600", eventWidth: 3, sourceWidth: 8},
		{name: "File32", eventWidth: 6, sourceWidth: 32},
		{name: "File128", eventWidth: 6, sourceWidth: 128},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line := eventLine(tc.eventWidth, tc.sourceWidth, strings.Repeat("7", tc.eventWidth), "TAPE", "AA/V", "KB", "010", tcs...)
			ev, ok := ParseLine(line, 1, false).(EventStatement)
			if !ok {
				t.Fatalf("ParseLine(%q) did not produce an event", line)
			}
			if ev.SourceFieldSize != tc.sourceWidth {
				t.Errorf("SourceFieldSize = %d, want %d", ev.SourceFieldSize, tc.sourceWidth)
			}
			if ev.Source != "TAPE" || ev.Channels != "AA/V" || ev.Trans != "KB" || ev.TransOp != "010" {
				t.Errorf("unexpected fields: %+v", ev)
			}
		})
	}
}

func TestParseLine_RejectedEventLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "too short", line: "001  BL       V     C        00:00:00:00"},
		{name: "no channels", line: "001  BL             C        00:00:00:00 00:00:05:00 01:00:00:00 01:00:05:00"},
		{name: "no transition", line: "001  BL       V              00:00:00:00 00:00:05:00 01:00:00:00 01:00:05:00"},
		{name: "misaligned", line: "001  BL V C 00:00:00:00 00:00:05:00 01:00:00:00 01:00:05:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stmt := ParseLine(tc.line, 2, false)
			u, ok := stmt.(UnrecognizedStatement)
			if !ok {
				t.Fatalf("ParseLine() = %#v, want UnrecognizedStatement", stmt)
			}
			if u.Content != tc.line || u.Line != 2 {
				t.Errorf("UnrecognizedStatement = %+v", u)
			}
		})
	}
}

func TestParseLine_TolerantFallback(t *testing.T) {
	line := "002  A001C003_220217_R1AB  AA/V  D  045  01:02:03:04 01:02:05:04 00:00:10:00 00:00:12:00"

	if _, ok := ParseLine(line, 7, false).(UnrecognizedStatement); !ok {
		t.Fatal("strict mode should not recover a misaligned line")
	}

	ev, ok := ParseLine(line, 7, true).(EventStatement)
	if !ok {
		t.Fatal("tolerant mode did not recover the event line")
	}
	want := EventStatement{
		Event:     "002",
		Source:    "A001C003_220217_R1AB",
		Channels:  "AA/V",
		Trans:     "D",
		TransOp:   "045",
		SourceIn:  "01:02:03:04",
		SourceOut: "01:02:05:04",
		RecordIn:  "00:00:10:00",
		RecordOut: "00:00:12:00",
		Line:      7,
	}
	if ev != want {
		t.Errorf("ParseLine() =\n%+v\nwant\n%+v", ev, want)
	}

	garbage := "003  nothing like an event line"
	if _, ok := ParseLine(garbage, 8, true).(UnrecognizedStatement); !ok {
		t.Error("tolerant mode should leave garbage unrecognized")
	}
}

func TestParseLine_Dispatch(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Statement
	}{
		{name: "title", line: "TITLE:   My Reel ", want: TitleStatement{Title: "My Reel", Line: 3}},
		{name: "drop frame", line: "FCM: DROP FRAME", want: FCMStatement{Drop: true, Line: 3}},
		{name: "non-drop frame", line: "FCM: NON-DROP FRAME", want: FCMStatement{Drop: false, Line: 3}},
		{name: "aud 3", line: "AUD   3", want: AudioExtStatement{Audio3: true, Line: 3}},
		{name: "aud 4", line: "AUD   4", want: AudioExtStatement{Audio4: true, Line: 3}},
		{name: "aud 3 4", line: "AUD   3     4", want: AudioExtStatement{Audio3: true, Audio4: true, Line: 3}},
		{name: "aud none", line: "AUD   5", want: UnrecognizedStatement{Content: "AUD   5", Line: 3}},
		{name: "source umid", line: ">>> SOURCE A001 3A0B4C", want: SourceUMIDStatement{Text: ">>> SOURCE A001 3A0B4C", Line: 3}},
		{name: "effects name", line: "EFFECTS NAME IS CROSS DISSOLVE", want: EffectsNameStatement{Name: "CROSS DISSOLVE", Line: 3}},
		{name: "split video", line: "SPLIT:    VIDEO DELAY=  00:00:00:10", want: SplitEditStatement{Video: true, Delay: "00:00:00:10", Line: 3}},
		{name: "split audio", line: "SPLIT:    AUDIO DELAY=  00:00:01:00", want: SplitEditStatement{Video: false, Delay: "00:00:01:00", Line: 3}},
		{name: "remark", line: "* just a note", want: RemarkStatement{Text: "just a note", Line: 3}},
		{name: "blank", line: "   ", want: UnrecognizedStatement{Content: "", Line: 3}},
		{name: "motion", line: "M2   AX       000.0                00:00:20:00", want: UnrecognizedStatement{Content: "M2   AX       000.0                00:00:20:00", Line: 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLine(tc.line, 3, false)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseLine(%q) = %#v, want %#v", tc.line, got, tc.want)
			}
			if got.LineNumber() != 3 {
				t.Errorf("LineNumber() = %d, want 3", got.LineNumber())
			}
		})
	}
}

func TestParseStatements_OnePerLine(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(testEDL, "\n"), "\n")
	stmts := ParseStatements(lines, false)

	if len(stmts) != len(lines) {
		t.Fatalf("len(stmts) = %d, want %d", len(stmts), len(lines))
	}
	for i, s := range stmts {
		if s.LineNumber() != i {
			t.Errorf("stmts[%d].LineNumber() = %d", i, s.LineNumber())
		}
	}
	if stmts[0].Kind() != KindTitle {
		t.Errorf("stmts[0].Kind() = %v, want Title", stmts[0].Kind())
	}
}

func TestStatementKind_String(t *testing.T) {
	if KindCorruptRemark.String() != "CorruptRemark" {
		t.Errorf("String() = %q", KindCorruptRemark.String())
	}
	if StatementKind(99).String() != "Invalid" {
		t.Errorf("String() = %q", StatementKind(99).String())
	}
}
