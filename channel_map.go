// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

type channelTriple struct {
	video, a1, a2 bool
}

// channelCodes maps the canonical channel codes of an event line.
var channelCodes = map[string]channelTriple{
	"V":    {video: true},
	"A":    {a1: true},
	"A2":   {a2: true},
	"AA":   {a1: true, a2: true},
	"B":    {video: true, a1: true},
	"AA/V": {video: true, a1: true, a2: true},
	"V/AA": {video: true, a1: true, a2: true},
	"A2/V": {video: true, a2: true},
	"V/A2": {video: true, a2: true},
}

// numberedAudioRegex matches codes naming one audio channel directly, like A3
// or A12.
var numberedAudioRegex = regexp.MustCompile(`^A([0-9]+)$`)

// ChannelMap is the set of channels an edit or event applies to. The zero
// value has no video and no audio.
type ChannelMap struct {
	video bool
	audio map[int]struct{}
}

// NewChannelMap returns a map with the given video flag and audio channels.
func NewChannelMap(video bool, audio ...int) ChannelMap {
	c := ChannelMap{video: video}
	for _, n := range audio {
		c.SetAudio(n, true)
	}
	return c
}

// AppendEvent adds the channels named by an event line's channel code.
// Unknown codes leave the map as it was.
func (c *ChannelMap) AppendEvent(code string) {
	if t, ok := channelCodes[code]; ok {
		c.video = t.video
		c.SetAudio(1, t.a1)
		c.SetAudio(2, t.a2)
		return
	}
	if m := numberedAudioRegex.FindStringSubmatch(code); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.SetAudio(n, true)
		}
	}
}

// AppendExt applies an AUD extension line.
func (c *ChannelMap) AppendExt(ext AudioExtStatement) {
	c.SetAudio(3, ext.Audio3)
	c.SetAudio(4, ext.Audio4)
}

// SetVideo sets the video flag.
func (c *ChannelMap) SetVideo(v bool) { c.video = v }

// SetAudio adds or removes an audio channel.
func (c *ChannelMap) SetAudio(channel int, enabled bool) {
	if !enabled {
		delete(c.audio, channel)
		return
	}
	if c.audio == nil {
		c.audio = make(map[int]struct{})
	}
	c.audio[channel] = struct{}{}
}

// Video reports whether video is included.
func (c ChannelMap) Video() bool { return c.video }

// Audio reports whether any audio channel is included.
func (c ChannelMap) Audio() bool { return len(c.audio) > 0 }

// HasAudio reports whether the given audio channel is included.
func (c ChannelMap) HasAudio(channel int) bool {
	_, ok := c.audio[channel]
	return ok
}

func (c ChannelMap) A1() bool { return c.HasAudio(1) }
func (c ChannelMap) A2() bool { return c.HasAudio(2) }
func (c ChannelMap) A3() bool { return c.HasAudio(3) }
func (c ChannelMap) A4() bool { return c.HasAudio(4) }

// AudioChannels returns the audio channel numbers in ascending order.
func (c ChannelMap) AudioChannels() []int {
	out := make([]int, 0, len(c.audio))
	for n := range c.audio {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Union returns a new map holding the channels of both c and o. Neither
// operand is modified.
func (c ChannelMap) Union(o ChannelMap) ChannelMap {
	out := ChannelMap{video: c.video || o.video}
	for n := range c.audio {
		out.SetAudio(n, true)
	}
	for n := range o.audio {
		out.SetAudio(n, true)
	}
	return out
}

// Equal reports whether both maps hold the same channels.
func (c ChannelMap) Equal(o ChannelMap) bool {
	if c.video != o.video || len(c.audio) != len(o.audio) {
		return false
	}
	for n := range c.audio {
		if !o.HasAudio(n) {
			return false
		}
	}
	return true
}

// String formats the map like "V A1 A2".
func (c ChannelMap) String() string {
	var parts []string
	if c.video {
		parts = append(parts, "V")
	}
	for _, n := range c.AudioChannels() {
		parts = append(parts, fmt.Sprintf("A%d", n))
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, " ")
}
