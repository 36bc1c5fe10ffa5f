// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TransitionKind is the decoded type of a transition code.
type TransitionKind string

const (
	TransitionCut           TransitionKind = "C"
	TransitionDissolve      TransitionKind = "D"
	TransitionWipe          TransitionKind = "W"
	TransitionKeyBackground TransitionKind = "KB"
	TransitionKey           TransitionKind = "K"
	TransitionKeyOut        TransitionKind = "KO"
	TransitionUnknown       TransitionKind = ""
)

var (
	// ErrNoOperand is returned by EffectDuration when the event line has no
	// transition operand, as is normal for cuts.
	ErrNoOperand = errors.New("cmx3600: transition has no operand")
	// ErrInvalidOperand is returned when an operand is not a frame count.
	ErrInvalidOperand = errors.New("cmx3600: invalid transition operand")
	// ErrNotWipe is returned by WipeNumber for any transition but a wipe.
	ErrNotWipe = errors.New("cmx3600: transition is not a wipe")
)

// Transition is the transition of an edit: a cut, dissolve, wipe or key.
type Transition struct {
	code    string
	operand string
	name    string
}

// NewTransition builds a transition from an event line's transition code and
// operand columns. name is the effect name, if the event had one.
func NewTransition(code, operand, name string) Transition {
	return Transition{code: code, operand: operand, name: name}
}

// Code is the transition code as written, e.g. "W001".
func (t Transition) Code() string { return t.code }

// Operand is the operand column as written.
func (t Transition) Operand() string { return t.operand }

// Name is the effect name from an "EFFECTS NAME IS" line, or "".
func (t Transition) Name() string { return t.name }

// Kind decodes the transition code.
func (t Transition) Kind() TransitionKind {
	switch {
	case t.Cut():
		return TransitionCut
	case t.Dissolve():
		return TransitionDissolve
	case t.Wipe():
		return TransitionWipe
	case t.KeyBackground():
		return TransitionKeyBackground
	case t.KeyForeground():
		return TransitionKey
	case t.KeyOut():
		return TransitionKeyOut
	default:
		return TransitionUnknown
	}
}

func (t Transition) Cut() bool      { return t.code == string(TransitionCut) }
func (t Transition) Dissolve() bool { return t.code == string(TransitionDissolve) }
func (t Transition) Wipe() bool     { return strings.HasPrefix(t.code, string(TransitionWipe)) }

// KeyBackground reports a key background event.
func (t Transition) KeyBackground() bool { return t.code == string(TransitionKeyBackground) }

// KeyForeground reports a key foreground event.
func (t Transition) KeyForeground() bool { return t.code == string(TransitionKey) }

// KeyOut reports a key out: the foreground is removed and replaced by the
// key background.
func (t Transition) KeyOut() bool { return t.code == string(TransitionKeyOut) }

// WipeNumber returns the wipe pattern number of a wipe code like "W001".
func (t Transition) WipeNumber() (int, error) {
	if !t.Wipe() {
		return 0, ErrNotWipe
	}
	n, err := strconv.Atoi(t.code[len(TransitionWipe):])
	if err != nil {
		return 0, fmt.Errorf("cmx3600: invalid wipe code %q: %w", t.code, err)
	}
	return n, nil
}

// EffectDuration returns the length of the transition in record frames. For
// key events it is the length of the fade in.
func (t Transition) EffectDuration() (int, error) {
	if t.operand == "" {
		return 0, ErrNoOperand
	}
	n, err := strconv.Atoi(t.operand)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperand, t.operand)
	}
	return n, nil
}

func (t Transition) String() string {
	if t.operand == "" {
		return t.code
	}
	return t.code + " " + t.operand
}
