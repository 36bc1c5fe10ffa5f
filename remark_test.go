// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import (
	"reflect"
	"testing"
)

func TestParseLine_Remarks(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Statement
	}{
		{
			name: "from clip name",
			line: "* FROM CLIP NAME:  HEAD LEADER MONO",
			want: ClipNameStatement{Name: "HEAD LEADER MONO", Affect: AffectFrom, Line: 1},
		},
		{
			name: "to clip name without space",
			line: "*TO CLIP NAME: SHOT B",
			want: ClipNameStatement{Name: "SHOT B", Affect: AffectTo, Line: 1},
		},
		{
			name: "source file",
			line: "* SOURCE FILE: OY_HEAD_LEADER.MOV",
			want: SourceFileStatement{Filename: "OY_HEAD_LEADER.MOV", Line: 1},
		},
		{
			name: "asc sop",
			line: "* ASC_SOP (0.9405 0.9562 0.9560)(-0.0257 -0.0276 -0.0243)(1.0000 1.0000 1.0000)",
			want: CdlSopStatement{Sop: AscSop{
				Slope:  RGB{0.9405, 0.9562, 0.9560},
				Offset: RGB{-0.0257, -0.0276, -0.0243},
				Power:  RGB{1, 1, 1},
			}, Line: 1},
		},
		{
			name: "asc sop with commas",
			line: "* ASC_SOP (1.1, 1.2, 1.3) (0, 0, 0) (0.9, 0.9, 0.9)",
			want: CdlSopStatement{Sop: AscSop{
				Slope:  RGB{1.1, 1.2, 1.3},
				Offset: RGB{0, 0, 0},
				Power:  RGB{0.9, 0.9, 0.9},
			}, Line: 1},
		},
		{
			name: "asc sat",
			line: "* ASC_SAT 0.9640",
			want: CdlSatStatement{Value: 0.9640, Line: 1},
		},
		{
			name: "frmc",
			line: "* FRMC START: 1001 FRMC END: 1486 FRMC DURATION: 486",
			want: FrmcStatement{Counts: FrameCounts{Start: 1001, End: 1486, Duration: 486}, Line: 1},
		},
		{
			name: "frmc lower case labels",
			line: "* FRMC start: 1 frmc end: 2 frmc duration: 2",
			want: FrmcStatement{Counts: FrameCounts{Start: 1, End: 2, Duration: 2}, Line: 1},
		},
		{
			name: "generic remark",
			line: "* EFFECT NOTE: REVERSE",
			want: RemarkStatement{Text: "EFFECT NOTE: REVERSE", Line: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLine(tc.line, 1, false)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseLine(%q) =\n%#v\nwant\n%#v", tc.line, got, tc.want)
			}
		})
	}
}

func TestParseLine_CorruptRemarks(t *testing.T) {
	tests := []struct {
		name string
		line string
		tag  string
	}{
		{name: "sat bad number", line: "* ASC_SAT 0.9x40", tag: TagAscSat},
		{name: "sat missing value", line: "* ASC_SAT", tag: TagAscSat},
		{name: "sat two values", line: "* ASC_SAT 0.9 1.0", tag: TagAscSat},
		{name: "sop two groups", line: "* ASC_SOP (1 1 1)(0 0 0)", tag: TagAscSop},
		{name: "sop short group", line: "* ASC_SOP (1 1)(0 0 0)(1 1 1)", tag: TagAscSop},
		{name: "sop bad number", line: "* ASC_SOP (1 one 1)(0 0 0)(1 1 1)", tag: TagAscSop},
		{name: "frmc bad number", line: "* FRMC START: 10x1 FRMC END: 1102 FRMC DURATION: 102", tag: TagFrmc},
		{name: "frmc partial", line: "* FRMC START: 1001 FRMC END: 1102", tag: TagFrmc},
		{name: "frmc no match", line: "* FRMC", tag: TagFrmc},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLine(tc.line, 9, false)
			c, ok := got.(CorruptRemarkStatement)
			if !ok {
				t.Fatalf("ParseLine(%q) = %#v, want CorruptRemarkStatement", tc.line, got)
			}
			if c.Tag != tc.tag {
				t.Errorf("Tag = %q, want %q", c.Tag, tc.tag)
			}
			if c.Line != 9 {
				t.Errorf("Line = %d, want 9", c.Line)
			}
		})
	}
}
