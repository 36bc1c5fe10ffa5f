// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package scenelist

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output format for a scene list.
type Format string

const (
	// FormatCMX writes each scene as a CMX 3600 event on the auxiliary
	// source, with the scene name as its clip name.
	FormatCMX Format = "cmx"
	// FormatCols writes start, end and name columns.
	FormatCols Format = "cols"
	FormatYAML Format = "yaml"
)

// DefaultTitle is the TITLE: of cmx output.
const DefaultTitle = "SCENE LIST"

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCMX, FormatCols, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown scene list format %q", s)
	}
}

// Writer writes scene lists.
type Writer struct {
	w      io.Writer
	format Format
	title  string
}

// NewWriter creates a writer of cmx format scene lists.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:      w,
		format: FormatCMX,
		title:  DefaultTitle,
	}
}

// SetFormat sets the output format.
func (w *Writer) SetFormat(f Format) {
	w.format = f
}

// SetTitle sets the title written by the cmx and yaml formats.
func (w *Writer) SetTitle(title string) {
	w.title = title
}

// Write writes the scenes in the configured format.
func (w *Writer) Write(scenes []Scene) error {
	switch w.format {
	case FormatCMX:
		return w.writeCMX(scenes)
	case FormatCols:
		return w.writeCols(scenes)
	case FormatYAML:
		return w.writeYAML(scenes)
	default:
		return fmt.Errorf("unknown scene list format %q", w.format)
	}
}

// writeCMX writes a CRLF terminated 3600 list. Events are numbered from 001
// so the result reads back as one edit per scene.
func (w *Writer) writeCMX(scenes []Scene) error {
	if _, err := fmt.Fprintf(w.w, "TITLE:  %s\r\n", w.title); err != nil {
		return err
	}
	if _, err := io.WriteString(w.w, "FCM: NON-DROP FRAME\r\n"); err != nil {
		return err
	}
	for i, s := range scenes {
		_, err := fmt.Fprintf(w.w, "%03d  AX       V     C        00:00:00:00 00:00:00:00 %s %s\r\n",
			i+1, s.Start, s.End)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w.w, "* FROM CLIP NAME: %s\r\n", s.Name); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeCols(scenes []Scene) error {
	for _, s := range scenes {
		if _, err := fmt.Fprintf(w.w, "%15s %15s %s\n", s.Start, s.End, s.Name); err != nil {
			return err
		}
	}
	return nil
}

type yamlDocument struct {
	Title  string  `yaml:"title"`
	Scenes []Scene `yaml:"scenes"`
}

func (w *Writer) writeYAML(scenes []Scene) error {
	if scenes == nil {
		scenes = []Scene{}
	}
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Title: w.title, Scenes: scenes}); err != nil {
		return fmt.Errorf("encode scene list: %w", err)
	}
	return enc.Close()
}
