// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

// Generator sources that appear in the source column instead of a tape.
const (
	SourceBlack = "BL"
	SourceAux   = "AX"
)

// Edit is one source-to-record operation. It is a read-only view over the
// statements that describe it; every accessor derives its value from them.
type Edit struct {
	event       EventStatement
	audioExt    *AudioExtStatement
	clipName    *ClipNameStatement
	sourceFile  *SourceFileStatement
	effectsName *EffectsNameStatement
	ascSop      *CdlSopStatement
	ascSat      *CdlSatStatement
	frmc        *FrmcStatement
	dropFrame   bool
}

// EventStatement returns the event line this edit was built from.
func (e Edit) EventStatement() EventStatement { return e.event }

// LineNumber is the zero-based line of the edit's event line.
func (e Edit) LineNumber() int { return e.event.Line }

// EventNumber is the event number as written on the event line.
func (e Edit) EventNumber() string { return e.event.Event }

// Channels returns the channels of the event line and its AUD extension.
func (e Edit) Channels() ChannelMap {
	var c ChannelMap
	c.AppendEvent(e.event.Channels)
	if e.audioExt != nil {
		c.AppendExt(*e.audioExt)
	}
	return c
}

// Transition returns the transition into this edit.
func (e Edit) Transition() Transition {
	name := ""
	if e.effectsName != nil {
		name = e.effectsName.Name
	}
	return NewTransition(e.event.Trans, e.event.TransOp, name)
}

// Source is the source column, usually a tape name. It is up to 8, 32 or
// 128 characters depending on the list format.
func (e Edit) Source() string { return e.event.Source }

// Black reports whether the source is black.
func (e Edit) Black() bool { return e.event.Source == SourceBlack }

// AuxSource reports whether the source is the auxiliary source.
func (e Edit) AuxSource() bool { return e.event.Source == SourceAux }

func (e Edit) SourceIn() string  { return e.event.SourceIn }
func (e Edit) SourceOut() string { return e.event.SourceOut }
func (e Edit) RecordIn() string  { return e.event.RecordIn }
func (e Edit) RecordOut() string { return e.event.RecordOut }

// SourceFile returns the file named by a "* SOURCE FILE:" remark.
func (e Edit) SourceFile() (string, bool) {
	if e.sourceFile == nil {
		return "", false
	}
	return e.sourceFile.Filename, true
}

// ClipName returns the clip named by a "* FROM CLIP NAME:" or
// "* TO CLIP NAME:" remark.
func (e Edit) ClipName() (string, bool) {
	if e.clipName == nil {
		return "", false
	}
	return e.clipName.Name, true
}

// AscSop returns the ASC CDL slope, offset and power of the edit.
func (e Edit) AscSop() (AscSop, bool) {
	if e.ascSop == nil {
		return AscSop{}, false
	}
	return e.ascSop.Sop, true
}

// AscSat returns the ASC CDL saturation of the edit.
func (e Edit) AscSat() (float64, bool) {
	if e.ascSat == nil {
		return 0, false
	}
	return e.ascSat.Value, true
}

// FrameCounts returns the FRMC frame counts of the edit.
func (e Edit) FrameCounts() (FrameCounts, bool) {
	if e.frmc == nil {
		return FrameCounts{}, false
	}
	return e.frmc.Counts, true
}

// DropFrame reports whether drop frame counting was in effect for the
// edit's event.
func (e Edit) DropFrame() bool { return e.dropFrame }
