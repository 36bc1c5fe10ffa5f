// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

// StatementKind identifies the variant of a Statement.
type StatementKind int

const (
	KindTitle StatementKind = iota
	KindFCM
	KindEvent
	KindAudioExt
	KindClipName
	KindSourceFile
	KindRemark
	KindEffectsName
	KindSourceUMID
	KindSplitEdit
	KindCdlSop
	KindCdlSat
	KindFrmc
	KindCorruptRemark
	KindUnrecognized
)

var statementKindNames = [...]string{
	KindTitle:         "Title",
	KindFCM:           "FCM",
	KindEvent:         "Event",
	KindAudioExt:      "AudioExt",
	KindClipName:      "ClipName",
	KindSourceFile:    "SourceFile",
	KindRemark:        "Remark",
	KindEffectsName:   "EffectsName",
	KindSourceUMID:    "SourceUMID",
	KindSplitEdit:     "SplitEdit",
	KindCdlSop:        "CdlSop",
	KindCdlSat:        "CdlSat",
	KindFrmc:          "Frmc",
	KindCorruptRemark: "CorruptRemark",
	KindUnrecognized:  "Unrecognized",
}

func (k StatementKind) String() string {
	if k < 0 || int(k) >= len(statementKindNames) {
		return "Invalid"
	}
	return statementKindNames[k]
}

// Statement is one classified line of an EDL. The set of implementations is
// closed; use a type switch over the *Statement types of this package.
type Statement interface {
	// LineNumber is the zero-based line index in the document. The TITLE:
	// line is line 0.
	LineNumber() int
	Kind() StatementKind
	statement()
}

// ClipAffect tells whether a clip name remark names the outgoing or incoming
// side of a transition.
type ClipAffect string

const (
	AffectFrom ClipAffect = "from"
	AffectTo   ClipAffect = "to"
)

// TitleStatement is the mandatory first "TITLE:" line.
type TitleStatement struct {
	Title string
	Line  int
}

// FCMStatement is a frame count mode line.
type FCMStatement struct {
	Drop bool
	Line int
}

// EventStatement is a standard form event line: one source-to-record
// operation.
type EventStatement struct {
	Event     string // event number as written, e.g. "001" or "000012"
	Source    string // tape name or file name
	Channels  string // raw channel code, e.g. "V", "AA/V", "A3"
	Trans     string // transition code, e.g. "C", "D", "W001"
	TransOp   string // transition operand, empty for cuts
	SourceIn  string
	SourceOut string
	RecordIn  string
	RecordOut string

	// SourceFieldSize is the width of the source column that was detected:
	// 8 for classic CMX 3600, 32 or 128 for the File32/File128 dialects.
	// It is 0 when the line was recovered by the tolerant matcher.
	SourceFieldSize int
	Line            int
}

// AudioExtStatement is an "AUD" line extending the previous event line to
// audio channels 3 and/or 4.
type AudioExtStatement struct {
	Audio3 bool
	Audio4 bool
	Line   int
}

// ClipNameStatement is a "* FROM CLIP NAME:" or "* TO CLIP NAME:" remark.
type ClipNameStatement struct {
	Name   string
	Affect ClipAffect
	Line   int
}

// SourceFileStatement is a "* SOURCE FILE:" remark.
type SourceFileStatement struct {
	Filename string
	Line     int
}

// RemarkStatement is any other "*" remark line.
type RemarkStatement struct {
	Text string
	Line int
}

// EffectsNameStatement names the effect applied by an event's transition.
type EffectsNameStatement struct {
	Name string
	Line int
}

// SourceUMIDStatement marks a ">>> SOURCE" line. Its content is kept raw.
type SourceUMIDStatement struct {
	Text string
	Line int
}

// SplitEditStatement is a "SPLIT:" line.
type SplitEditStatement struct {
	Video bool
	Delay string // raw timecode-like delay, not parsed
	Line  int
}

// CdlSopStatement is a well-formed "* ASC_SOP" remark.
type CdlSopStatement struct {
	Sop  AscSop
	Line int
}

// CdlSatStatement is a well-formed "* ASC_SAT" remark.
type CdlSatStatement struct {
	Value float64
	Line  int
}

// FrmcStatement is a well-formed "* FRMC" remark.
type FrmcStatement struct {
	Counts FrameCounts
	Line   int
}

// Tags carried by CorruptRemarkStatement.
const (
	TagAscSop = "ASC_SOP"
	TagAscSat = "ASC_SAT"
	TagFrmc   = "FRMC"
)

// CorruptRemarkStatement is a remark that was recognized by its prefix but
// whose content could not be decoded.
type CorruptRemarkStatement struct {
	Tag  string
	Text string
	Line int
}

// UnrecognizedStatement is a line that matched no known statement form.
type UnrecognizedStatement struct {
	Content string
	Line    int
}

func (s TitleStatement) LineNumber() int         { return s.Line }
func (s FCMStatement) LineNumber() int           { return s.Line }
func (s EventStatement) LineNumber() int         { return s.Line }
func (s AudioExtStatement) LineNumber() int      { return s.Line }
func (s ClipNameStatement) LineNumber() int      { return s.Line }
func (s SourceFileStatement) LineNumber() int    { return s.Line }
func (s RemarkStatement) LineNumber() int        { return s.Line }
func (s EffectsNameStatement) LineNumber() int   { return s.Line }
func (s SourceUMIDStatement) LineNumber() int    { return s.Line }
func (s SplitEditStatement) LineNumber() int     { return s.Line }
func (s CdlSopStatement) LineNumber() int        { return s.Line }
func (s CdlSatStatement) LineNumber() int        { return s.Line }
func (s FrmcStatement) LineNumber() int          { return s.Line }
func (s CorruptRemarkStatement) LineNumber() int { return s.Line }
func (s UnrecognizedStatement) LineNumber() int  { return s.Line }

func (TitleStatement) Kind() StatementKind         { return KindTitle }
func (FCMStatement) Kind() StatementKind           { return KindFCM }
func (EventStatement) Kind() StatementKind         { return KindEvent }
func (AudioExtStatement) Kind() StatementKind      { return KindAudioExt }
func (ClipNameStatement) Kind() StatementKind      { return KindClipName }
func (SourceFileStatement) Kind() StatementKind    { return KindSourceFile }
func (RemarkStatement) Kind() StatementKind        { return KindRemark }
func (EffectsNameStatement) Kind() StatementKind   { return KindEffectsName }
func (SourceUMIDStatement) Kind() StatementKind    { return KindSourceUMID }
func (SplitEditStatement) Kind() StatementKind     { return KindSplitEdit }
func (CdlSopStatement) Kind() StatementKind        { return KindCdlSop }
func (CdlSatStatement) Kind() StatementKind        { return KindCdlSat }
func (FrmcStatement) Kind() StatementKind          { return KindFrmc }
func (CorruptRemarkStatement) Kind() StatementKind { return KindCorruptRemark }
func (UnrecognizedStatement) Kind() StatementKind  { return KindUnrecognized }

func (TitleStatement) statement()         {}
func (FCMStatement) statement()           {}
func (EventStatement) statement()         {}
func (AudioExtStatement) statement()      {}
func (ClipNameStatement) statement()      {}
func (SourceFileStatement) statement()    {}
func (RemarkStatement) statement()        {}
func (EffectsNameStatement) statement()   {}
func (SourceUMIDStatement) statement()    {}
func (SplitEditStatement) statement()     {}
func (CdlSopStatement) statement()        {}
func (CdlSatStatement) statement()        {}
func (FrmcStatement) statement()          {}
func (CorruptRemarkStatement) statement() {}
func (UnrecognizedStatement) statement()  {}
