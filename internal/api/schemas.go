// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package api

import (
	"github.com/mrjoshuak/cmx3600"
	"github.com/mrjoshuak/cmx3600/internal/catalog"
	"github.com/mrjoshuak/cmx3600/internal/scenelist"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
	Catalog bool   `json:"catalog"`
}

type ParseResponse struct {
	Title        string                 `json:"title"`
	Format       string                 `json:"format"`
	DropFrame    bool                   `json:"drop_frame"`
	Channels     string                 `json:"channels"`
	Events       []EventResponse        `json:"events"`
	Unrecognized []UnrecognizedResponse `json:"unrecognized"`
}

type EventResponse struct {
	Number    int            `json:"number"`
	DropFrame bool           `json:"drop_frame"`
	Remarks   []string       `json:"remarks,omitempty"`
	Edits     []EditResponse `json:"edits"`
}

type EditResponse struct {
	Line           int                  `json:"line"`
	Event          string               `json:"event"`
	Source         string               `json:"source"`
	Channels       string               `json:"channels"`
	Transition     string               `json:"transition"`
	TransitionName string               `json:"transition_name,omitempty"`
	EffectDuration *int                 `json:"effect_duration,omitempty"`
	SourceIn       string               `json:"source_in"`
	SourceOut      string               `json:"source_out"`
	RecordIn       string               `json:"record_in"`
	RecordOut      string               `json:"record_out"`
	ClipName       string               `json:"clip_name,omitempty"`
	SourceFile     string               `json:"source_file,omitempty"`
	ASCSOP         *SOPResponse         `json:"asc_sop,omitempty"`
	ASCSat         *float64             `json:"asc_sat,omitempty"`
	FrameCounts    *FrameCountsResponse `json:"frame_counts,omitempty"`
}

type SOPResponse struct {
	Slope  [3]float64 `json:"slope"`
	Offset [3]float64 `json:"offset"`
	Power  [3]float64 `json:"power"`
}

type FrameCountsResponse struct {
	Start    int `json:"start"`
	End      int `json:"end"`
	Duration int `json:"duration"`
}

type UnrecognizedResponse struct {
	Line int    `json:"line"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type ScenesResponse struct {
	Title  string          `json:"title"`
	Scenes []SceneResponse `json:"scenes"`
}

type SceneResponse struct {
	Name      string `json:"name"`
	Start     string `json:"start"`
	End       string `json:"end"`
	EditCount int    `json:"edit_count"`
}

type SaveListResponse struct {
	ID int64 `json:"id"`
}

type ListsResponse struct {
	Lists []*catalog.EditList `json:"lists"`
}

type ListResponse struct {
	List  *catalog.EditList `json:"list"`
	Edits []*catalog.Edit   `json:"edits"`
}

func EditListToResponse(edl *cmx3600.EditList) ParseResponse {
	resp := ParseResponse{
		Title:        edl.Title(),
		Format:       string(edl.Format()),
		DropFrame:    edl.DropFrame(),
		Channels:     edl.Channels().String(),
		Events:       []EventResponse{},
		Unrecognized: []UnrecognizedResponse{},
	}
	for _, ev := range edl.Events() {
		er := EventResponse{Number: ev.Number(), DropFrame: ev.DropFrame(), Edits: []EditResponse{}}
		for _, r := range ev.Remarks() {
			er.Remarks = append(er.Remarks, r.Text)
		}
		for _, e := range ev.Edits() {
			er.Edits = append(er.Edits, EditToResponse(e))
		}
		resp.Events = append(resp.Events, er)
	}
	for _, s := range edl.UnrecognizedStatements() {
		u := UnrecognizedResponse{Line: s.LineNumber(), Kind: s.Kind().String()}
		switch st := s.(type) {
		case cmx3600.UnrecognizedStatement:
			u.Text = st.Content
		case cmx3600.CorruptRemarkStatement:
			u.Text = st.Text
		}
		resp.Unrecognized = append(resp.Unrecognized, u)
	}
	return resp
}

func EditToResponse(e cmx3600.Edit) EditResponse {
	t := e.Transition()
	resp := EditResponse{
		Line:           e.LineNumber(),
		Event:          e.EventNumber(),
		Source:         e.Source(),
		Channels:       e.Channels().String(),
		Transition:     t.String(),
		TransitionName: t.Name(),
		SourceIn:       e.SourceIn(),
		SourceOut:      e.SourceOut(),
		RecordIn:       e.RecordIn(),
		RecordOut:      e.RecordOut(),
	}
	if d, err := t.EffectDuration(); err == nil {
		resp.EffectDuration = &d
	}
	resp.ClipName, _ = e.ClipName()
	resp.SourceFile, _ = e.SourceFile()
	if sop, ok := e.AscSop(); ok {
		resp.ASCSOP = &SOPResponse{
			Slope:  [3]float64{sop.Slope.Red, sop.Slope.Green, sop.Slope.Blue},
			Offset: [3]float64{sop.Offset.Red, sop.Offset.Green, sop.Offset.Blue},
			Power:  [3]float64{sop.Power.Red, sop.Power.Green, sop.Power.Blue},
		}
	}
	if sat, ok := e.AscSat(); ok {
		resp.ASCSat = &sat
	}
	if fc, ok := e.FrameCounts(); ok {
		resp.FrameCounts = &FrameCountsResponse{Start: fc.Start, End: fc.End, Duration: fc.Duration}
	}
	return resp
}

func ScenesToResponse(title string, scenes []scenelist.Scene) ScenesResponse {
	resp := ScenesResponse{Title: title, Scenes: make([]SceneResponse, len(scenes))}
	for i, s := range scenes {
		resp.Scenes[i] = SceneResponse{Name: s.Name, Start: s.Start, End: s.End, EditCount: len(s.Edits)}
	}
	return resp
}
