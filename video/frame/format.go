package frame

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Format is the pixel layout of an ImageFrame.
type Format int

// Values match the wire numbering used by upstream producers; do not reorder.
const (
	Unknown     Format = 0
	SRGB        Format = 1
	SRGBA       Format = 2
	Gray8       Format = 3
	Gray16      Format = 4
	YCbCr420P   Format = 5
	YCbCr420P10 Format = 6
	SRGB48      Format = 7
	SRGBA64     Format = 8
	Vec32F1     Format = 9
	LAB8        Format = 10
	SBGRA       Format = 11
	Vec32F2     Format = 12
)

type formatInfo struct {
	name      string
	channels  int
	byteDepth int
	matType   gocv.MatType
	// planar formats can't be viewed as a single interleaved Mat.
	planar bool
}

var formats = map[Format]formatInfo{
	SRGB:        {"SRGB", 3, 1, gocv.MatTypeCV8UC3, false},
	SRGBA:       {"SRGBA", 4, 1, gocv.MatTypeCV8UC4, false},
	Gray8:       {"GRAY8", 1, 1, gocv.MatTypeCV8UC1, false},
	Gray16:      {"GRAY16", 1, 2, gocv.MatTypeCV16UC1, false},
	YCbCr420P:   {"YCBCR420P", 1, 1, gocv.MatTypeCV8UC1, true},
	YCbCr420P10: {"YCBCR420P10", 1, 2, gocv.MatTypeCV16UC1, true},
	SRGB48:      {"SRGB48", 3, 2, gocv.MatTypeCV16UC3, false},
	SRGBA64:     {"SRGBA64", 4, 2, gocv.MatTypeCV16UC4, false},
	Vec32F1:     {"VEC32F1", 1, 4, gocv.MatTypeCV32FC1, false},
	LAB8:        {"LAB8", 3, 1, gocv.MatTypeCV8UC3, false},
	SBGRA:       {"SBGRA", 4, 1, gocv.MatTypeCV8UC4, false},
	Vec32F2:     {"VEC32F2", 2, 4, gocv.MatTypeCV32FC2, false},
}

func (f Format) String() string {
	if i, ok := formats[f]; ok {
		return i.name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(f))
}

// Channels is the number of interleaved channels per pixel, or 0 if unknown.
func (f Format) Channels() int {
	return formats[f].channels
}

// ByteDepth is the size in bytes of a single channel value, or 0 if unknown.
func (f Format) ByteDepth() int {
	return formats[f].byteDepth
}

// PixelBytes is the size of one pixel.
func (f Format) PixelBytes() int {
	return f.Channels() * f.ByteDepth()
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}
