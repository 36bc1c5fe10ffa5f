// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import "strconv"

// Event is a run of statements sharing one event number, together with the
// remarks and other lines that follow them. Most events hold a single edit;
// dissolves, wipes and keys are written as two event lines with the same
// number, the outgoing source followed by the incoming one.
type Event struct {
	statements []Statement
	dropFrame  bool
}

// NewEvent wraps a run of statements. Drop frame counting is taken from the
// last FCM statement preceding the first event line in the run.
func NewEvent(statements []Statement) *Event {
	drop := false
	for _, s := range statements {
		if _, ok := s.(EventStatement); ok {
			break
		}
		if fcm, ok := s.(FCMStatement); ok {
			drop = fcm.Drop
		}
	}
	return newEvent(statements, drop)
}

func newEvent(statements []Statement, drop bool) *Event {
	return &Event{statements: statements, dropFrame: drop}
}

// Number returns the event number of the first event line, or -1 if the
// event holds no event line or its number does not fit an int.
func (e *Event) Number() int {
	for _, s := range e.statements {
		if ev, ok := s.(EventStatement); ok {
			n, err := strconv.Atoi(ev.Event)
			if err != nil {
				return -1
			}
			return n
		}
	}
	return -1
}

// DropFrame reports whether drop frame counting was in effect when the
// event started.
func (e *Event) DropFrame() bool { return e.dropFrame }

// Statements returns a copy of the statements of the event.
func (e *Event) Statements() []Statement {
	out := make([]Statement, len(e.statements))
	copy(out, e.statements)
	return out
}

// UnrecognizedStatements returns the lines of the event that were not
// recognized.
func (e *Event) UnrecognizedStatements() []UnrecognizedStatement {
	return statementsOf[UnrecognizedStatement](e.statements)
}

// Remarks returns the generic remarks of the event.
func (e *Event) Remarks() []RemarkStatement {
	return statementsOf[RemarkStatement](e.statements)
}

type editPair struct {
	event    EventStatement
	audioExt *AudioExtStatement
}

// Edits decomposes the event into its edits, in order of appearance.
//
// An AUD line belongs to the event line directly before it. Clip names go
// "from" to the first and "to" to the second edit of a two-edit event, and
// otherwise one per edit when the counts agree. Source files and color
// decisions go one per edit when the counts agree, or to every edit when
// there is exactly one. An effects name goes to the last edit only.
func (e *Event) Edits() []Edit {
	pairs := e.editPairs()
	n := len(pairs)
	if n == 0 {
		return []Edit{}
	}

	clipNames := e.clipNamesFor(n)
	sourceFiles := distribute(statementsOf[SourceFileStatement](e.statements), n)
	sops := distribute(statementsOf[CdlSopStatement](e.statements), n)
	sats := distribute(statementsOf[CdlSatStatement](e.statements), n)
	frmcs := distribute(statementsOf[FrmcStatement](e.statements), n)

	var effectsName *EffectsNameStatement
	if names := statementsOf[EffectsNameStatement](e.statements); len(names) > 0 {
		effectsName = &names[0]
	}

	edits := make([]Edit, n)
	for i, p := range pairs {
		edits[i] = Edit{
			event:      p.event,
			audioExt:   p.audioExt,
			clipName:   clipNames[i],
			sourceFile: sourceFiles[i],
			ascSop:     sops[i],
			ascSat:     sats[i],
			frmc:       frmcs[i],
			dropFrame:  e.dropFrame,
		}
	}
	edits[n-1].effectsName = effectsName
	return edits
}

func (e *Event) editPairs() []editPair {
	var pairs []editPair
	for i, s := range e.statements {
		ev, ok := s.(EventStatement)
		if !ok {
			continue
		}
		p := editPair{event: ev}
		if i+1 < len(e.statements) {
			if ext, ok := e.statements[i+1].(AudioExtStatement); ok {
				p.audioExt = &ext
			}
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func (e *Event) clipNamesFor(n int) []*ClipNameStatement {
	names := statementsOf[ClipNameStatement](e.statements)
	out := make([]*ClipNameStatement, n)

	if n == 2 {
		for i := range names {
			switch names[i].Affect {
			case AffectFrom:
				if out[0] == nil {
					out[0] = &names[i]
				}
			case AffectTo:
				if out[1] == nil {
					out[1] = &names[i]
				}
			}
		}
		return out
	}

	if len(names) == n {
		for i := range names {
			out[i] = &names[i]
		}
	}
	return out
}

// distribute assigns items to n edits: one each when the counts agree, the
// single item to all of them when there is one, and nothing otherwise.
func distribute[T any](items []T, n int) []*T {
	out := make([]*T, n)
	switch {
	case len(items) == n:
		for i := range items {
			out[i] = &items[i]
		}
	case len(items) == 1:
		for i := range out {
			out[i] = &items[0]
		}
	}
	return out
}

func statementsOf[T Statement](stmts []Statement) []T {
	var out []T
	for _, s := range stmts {
		if v, ok := s.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
