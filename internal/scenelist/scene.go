// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package scenelist merges the video edits of an edit list into scenes,
// named from the clip names of the edits, and writes them out as a list.
package scenelist

import (
	"fmt"
	"regexp"

	"github.com/mrjoshuak/cmx3600"
)

// DefaultPattern takes "A12" from clip names like "VA12-3" or "A12_T2".
const DefaultPattern = `V?([A-Z]*[0-9]+)`

// Extractor derives scene names from clip names.
type Extractor struct {
	re *regexp.Regexp
}

// NewExtractor compiles pattern for case-insensitive matching at the start
// of a clip name. The first capturing group is the scene name; a pattern
// without groups uses the whole match.
func NewExtractor(pattern string) (*Extractor, error) {
	re, err := regexp.Compile(`(?i)^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("scene pattern %q: %w", pattern, err)
	}
	return &Extractor{re: re}, nil
}

// SceneName returns the scene of an edit. A clip name the pattern does not
// match is its own scene name. It returns false when the edit has no clip
// name or the scene group did not take part in the match.
func (x *Extractor) SceneName(e cmx3600.Edit) (string, bool) {
	name, ok := e.ClipName()
	if !ok {
		return "", false
	}
	return x.sceneName(name)
}

func (x *Extractor) sceneName(clipName string) (string, bool) {
	m := x.re.FindStringSubmatchIndex(clipName)
	switch {
	case m == nil:
		return clipName, true
	case len(m) < 4:
		return clipName[m[0]:m[1]], true
	case m[2] < 0:
		return "", false
	default:
		return clipName[m[2]:m[3]], true
	}
}

// Scene is a run of consecutive video edits with the same scene name.
type Scene struct {
	Name  string         `json:"name" yaml:"scene"`
	Start string         `json:"start" yaml:"start"`
	End   string         `json:"end" yaml:"end"`
	Edits []cmx3600.Edit `json:"-" yaml:"-"`
}

// Build groups the video edits of edl into scenes. Edits without a scene
// name are skipped and do not end the scene in progress. Start is the
// record in of the first edit of a scene and End the record out of the
// last.
func Build(edl *cmx3600.EditList, x *Extractor) []Scene {
	var (
		scenes  []Scene
		current string
	)
	for _, e := range edl.Edits() {
		if !e.Channels().Video() {
			continue
		}
		name, ok := x.SceneName(e)
		if !ok {
			continue
		}
		if len(scenes) == 0 || name != current {
			scenes = append(scenes, Scene{Name: name, Start: e.RecordIn()})
			current = name
		}
		s := &scenes[len(scenes)-1]
		s.Edits = append(s.Edits, e)
		s.End = e.RecordOut()
	}
	return scenes
}
