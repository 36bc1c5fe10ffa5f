// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package scenelist

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

var testScenes = []Scene{
	{Name: "A12", Start: "01:00:00:00", End: "01:00:05:00"},
	{Name: "14", Start: "01:00:06:00", End: "01:00:09:00"},
}

func TestWriter_CMX(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(testScenes); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "TITLE:  SCENE LIST\r\n" +
		"FCM: NON-DROP FRAME\r\n" +
		"001  AX       V     C        00:00:00:00 00:00:00:00 01:00:00:00 01:00:05:00\r\n" +
		"* FROM CLIP NAME: A12\r\n" +
		"002  AX       V     C        00:00:00:00 00:00:00:00 01:00:06:00 01:00:09:00\r\n" +
		"* FROM CLIP NAME: 14\r\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriter_CMXReadsBack(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetTitle("REEL 1 SCENES")
	if err := w.Write(testScenes); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	edl := decode(t, buf.String())
	if edl.Title() != "REEL 1 SCENES" {
		t.Errorf("Title() = %q", edl.Title())
	}
	if len(edl.UnrecognizedStatements()) != 0 {
		t.Errorf("unrecognized statements: %+v", edl.UnrecognizedStatements())
	}
	edits := edl.Edits()
	if len(edits) != len(testScenes) {
		t.Fatalf("len(Edits()) = %d, want %d", len(edits), len(testScenes))
	}
	for i, s := range testScenes {
		e := edits[i]
		name, _ := e.ClipName()
		if name != s.Name || e.RecordIn() != s.Start || e.RecordOut() != s.End || !e.AuxSource() {
			t.Errorf("edits[%d] = %s %s-%s, want scene %+v", i, name, e.RecordIn(), e.RecordOut(), s)
		}
	}

	again := Build(edl, mustExtractor(t, DefaultPattern))
	if len(again) != len(testScenes) || again[0].Name != "A12" || again[1].End != "01:00:09:00" {
		t.Errorf("Build() over the written list = %+v", again)
	}
}

func TestWriter_Cols(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetFormat(FormatCols)
	if err := w.Write(testScenes); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "    01:00:00:00     01:00:05:00 A12\n" +
		"    01:00:06:00     01:00:09:00 14\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetFormat(FormatYAML)
	if err := w.Write(testScenes); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var doc struct {
		Title  string `yaml:"title"`
		Scenes []struct {
			Scene string `yaml:"scene"`
			Start string `yaml:"start"`
			End   string `yaml:"end"`
		} `yaml:"scenes"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, buf.String())
	}
	if doc.Title != DefaultTitle || len(doc.Scenes) != 2 {
		t.Fatalf("document = %+v", doc)
	}
	if doc.Scenes[1].Scene != "14" || doc.Scenes[1].Start != "01:00:06:00" {
		t.Errorf("scenes[1] = %+v", doc.Scenes[1])
	}
	if strings.Contains(buf.String(), "edits") {
		t.Errorf("edits leaked into yaml output:\n%s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"cmx", "COLS", " yaml "} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) error = nil")
	}
}
