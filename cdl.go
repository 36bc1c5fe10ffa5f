// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package cmx3600

// RGB holds one value per color component.
type RGB struct {
	Red   float64
	Green float64
	Blue  float64
}

// AscSop is the slope, offset and power of an ASC CDL transfer function,
// out = (in*slope + offset)^power, per component.
type AscSop struct {
	Slope  RGB
	Offset RGB
	Power  RGB
}

// FrameCounts is the content of an FRMC remark.
type FrameCounts struct {
	Start    int
	End      int
	Duration int
}
