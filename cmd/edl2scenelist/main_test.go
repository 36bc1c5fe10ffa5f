// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const inputEDL = `TITLE: Reel 1
FCM: NON-DROP FRAME
001  A001     V     C        00:00:00:00 00:00:02:00 01:00:00:00 01:00:02:00
* FROM CLIP NAME:  VA12-1
002  A002     V     C        00:00:00:00 00:00:03:00 01:00:02:00 01:00:05:00
* FROM CLIP NAME:  A12-2
003  A003     A     C        00:00:00:00 00:00:03:00 01:00:05:00 01:00:08:00
* FROM CLIP NAME:  WILD-1
004  A004     V     C        00:00:00:00 00:00:04:00 01:00:05:00 01:00:09:00
* FROM CLIP NAME:  v14_T2
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reel1.edl")
	if err := os.WriteFile(path, []byte(inputEDL), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func colsLine(start, end, name string) string {
	return fmt.Sprintf("%15s %15s %s\n", start, end, name)
}

func TestRun_ColsFromStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-f", "cols"}, strings.NewReader(inputEDL), &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := colsLine("01:00:00:00", "01:00:05:00", "A12") +
		colsLine("01:00:05:00", "01:00:09:00", "14")
	if stdout.String() != want {
		t.Errorf("stdout =\n%q\nwant\n%q", stdout.String(), want)
	}
}

func TestRun_CMXToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scenes.edl")
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-o", out, writeInput(t)}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "TITLE:  SCENE LIST\r\nFCM: NON-DROP FRAME\r\n") {
		t.Errorf("output header = %q", got)
	}
	if !strings.Contains(got, "002  AX       V     C        00:00:00:00 00:00:00:00 01:00:05:00 01:00:09:00\r\n* FROM CLIP NAME: 14\r\n") {
		t.Errorf("output missing second scene:\n%s", got)
	}
}

func TestRun_PatternAndTitle(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-f", "yaml", "-p", `v?([a-z]+)`, "-title", "Scenes", writeInput(t)}
	if err := run(args, nil, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	got := stdout.String()
	for _, want := range []string{"title: Scenes", "scene: A\n", "scene: v\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("yaml output missing %q:\n%s", want, got)
		}
	}
}

func TestRun_Clipboard(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-clipboard", "-f", "cols", writeInput(t)}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if copied == "" || copied != stdout.String() {
		t.Errorf("clipboard = %q, stdout = %q", copied, stdout.String())
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	if err := run([]string{"-clipboard", writeInput(t)}, nil, &stdout, &stderr); err == nil {
		t.Error("run() error = nil, want clipboard failure")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cmx3600.yaml")
	cfg := "config_version: 1\nscenes:\n  format: cols\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-config", cfgPath, writeInput(t)}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), colsLine("01:00:00:00", "01:00:05:00", "A12")) {
		t.Errorf("stdout = %q, want cols output", stdout.String())
	}
}

func TestRun_Errors(t *testing.T) {
	input := writeInput(t)
	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{name: "unknown format", args: []string{"-f", "pdf", input}},
		{name: "bad pattern", args: []string{"-p", "V(", input}},
		{name: "missing file", args: []string{filepath.Join(t.TempDir(), "nope.edl")}},
		{name: "two inputs", args: []string{input, input}},
		{name: "no title", args: nil, stdin: "001  A001 V C\n"},
		{name: "unknown flag", args: []string{"-x"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tc.args, strings.NewReader(tc.stdin), &stdout, &stderr); err == nil {
				t.Errorf("run(%v) error = nil", tc.args)
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
		})
	}
}
