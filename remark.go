// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	remarkFromClipName = "FROM CLIP NAME:"
	remarkToClipName   = "TO CLIP NAME:"
	remarkSourceFile   = "SOURCE FILE:"
)

// ascSopGroupRegex matches one parenthesized group of an ASC_SOP remark.
var ascSopGroupRegex = regexp.MustCompile(`\(([^()]*)\)`)

// frmcRegex matches
//
//	FRMC START: 1001 FRMC END: 1102 FRMC DURATION: 102
var frmcRegex = regexp.MustCompile(
	`(?i)^FRMC\s+START:\s*(\S+)\s+FRMC\s+END:\s*(\S+)\s+FRMC\s+DURATION:\s*(\S+)\s*$`)

// parseRemark classifies the text of a remark line with its leading "*"
// already removed.
func parseRemark(text string, lineNumber int) Statement {
	switch {
	case strings.HasPrefix(text, remarkFromClipName):
		return ClipNameStatement{
			Name:   strings.TrimSpace(text[len(remarkFromClipName):]),
			Affect: AffectFrom,
			Line:   lineNumber,
		}
	case strings.HasPrefix(text, remarkToClipName):
		return ClipNameStatement{
			Name:   strings.TrimSpace(text[len(remarkToClipName):]),
			Affect: AffectTo,
			Line:   lineNumber,
		}
	case strings.HasPrefix(text, remarkSourceFile):
		return SourceFileStatement{
			Filename: strings.TrimSpace(text[len(remarkSourceFile):]),
			Line:     lineNumber,
		}
	case strings.HasPrefix(text, TagAscSop):
		return parseAscSop(text, lineNumber)
	case strings.HasPrefix(text, TagAscSat):
		return parseAscSat(text, lineNumber)
	case strings.HasPrefix(text, TagFrmc):
		return parseFrmc(text, lineNumber)
	default:
		return RemarkStatement{Text: text, Line: lineNumber}
	}
}

// parseAscSop reads
//
//	ASC_SOP (0.9405 0.9562 0.9560)(-0.0257 -0.0276 -0.0243)(1.0000 1.0000 1.0000)
//
// Components may be separated by spaces or commas.
func parseAscSop(text string, lineNumber int) Statement {
	corrupt := CorruptRemarkStatement{Tag: TagAscSop, Text: text, Line: lineNumber}

	groups := ascSopGroupRegex.FindAllStringSubmatch(text[len(TagAscSop):], -1)
	if len(groups) != 3 {
		return corrupt
	}

	var triples [3]RGB
	for i, g := range groups {
		rgb, ok := parseRGB(g[1])
		if !ok {
			return corrupt
		}
		triples[i] = rgb
	}

	return CdlSopStatement{
		Sop:  AscSop{Slope: triples[0], Offset: triples[1], Power: triples[2]},
		Line: lineNumber,
	}
}

func parseRGB(s string) (RGB, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return RGB{}, false
	}
	var v [3]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return RGB{}, false
		}
		v[i] = n
	}
	return RGB{Red: v[0], Green: v[1], Blue: v[2]}, true
}

func parseAscSat(text string, lineNumber int) Statement {
	fields := strings.Fields(text[len(TagAscSat):])
	if len(fields) != 1 {
		return CorruptRemarkStatement{Tag: TagAscSat, Text: text, Line: lineNumber}
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return CorruptRemarkStatement{Tag: TagAscSat, Text: text, Line: lineNumber}
	}
	return CdlSatStatement{Value: v, Line: lineNumber}
}

func parseFrmc(text string, lineNumber int) Statement {
	corrupt := CorruptRemarkStatement{Tag: TagFrmc, Text: text, Line: lineNumber}

	m := frmcRegex.FindStringSubmatch(text)
	if m == nil {
		return corrupt
	}
	var v [3]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return corrupt
		}
		v[i] = n
	}
	return FrmcStatement{
		Counts: FrameCounts{Start: v[0], End: v[1], Duration: v[2]},
		Line:   lineNumber,
	}
}
