package frame

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var (
	ErrEmpty         = errors.New("frame: empty image")
	ErrPlanar        = errors.New("frame: planar formats have no interleaved view")
	ErrUnknownFormat = errors.New("frame: unknown format")
	// ErrGeometry means the size, stride and buffer length disagree.
	ErrGeometry = errors.New("frame: inconsistent geometry")
)

// ImageFrame is a decoded image. Rows are WidthStep bytes apart, which may be
// more than Width * PixelBytes when the producer pads rows for alignment.
type ImageFrame struct {
	Format    Format
	Width     int
	Height    int
	WidthStep int
	Pixels    []byte
}

// New allocates a zeroed, unpadded frame.
func New(f Format, width, height int) *ImageFrame {
	return &ImageFrame{
		Format:    f,
		Width:     width,
		Height:    height,
		WidthStep: width * f.PixelBytes(),
		Pixels:    make([]byte, bufferSize(f, width, height, width*f.PixelBytes())),
	}
}

// bufferSize is the minimum number of bytes a frame of this geometry needs.
// The last row need not carry its padding.
func bufferSize(f Format, width, height, step int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	if formats[f].planar {
		// Full-size luma plane plus two quarter-size chroma planes.
		return step*height + 2*((width+1)/2)*((height+1)/2)*f.ByteDepth()
	}
	return step*(height-1) + width*f.PixelBytes()
}

// FromBytes wraps pix without copying. step may be 0 for tightly packed rows.
func FromBytes(f Format, width, height, step int, pix []byte) (*ImageFrame, error) {
	if step == 0 {
		step = width * f.PixelBytes()
	}
	i := &ImageFrame{
		Format:    f,
		Width:     width,
		Height:    height,
		WidthStep: step,
		Pixels:    pix,
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return i, nil
}

// Validate checks that the format is known and that Pixels holds every row
// the geometry describes. Frames built as literals should be validated before
// their pixels are read.
func (i *ImageFrame) Validate() error {
	if i == nil {
		return ErrEmpty
	}
	if !i.Format.Valid() {
		return fmt.Errorf("%w %v", ErrUnknownFormat, i.Format)
	}
	if i.Width < 0 || i.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrGeometry, i.Width, i.Height)
	}
	step := i.stride()
	if step < i.RowBytes() {
		return fmt.Errorf("%w: width step %d shorter than row of %d bytes", ErrGeometry, step, i.RowBytes())
	}
	if need := bufferSize(i.Format, i.Width, i.Height, step); len(i.Pixels) < need {
		return fmt.Errorf("%w: %d bytes too short for %dx%d %v with step %d, need %d",
			ErrGeometry, len(i.Pixels), i.Width, i.Height, i.Format, step, need)
	}
	return nil
}

// stride is the distance between rows. A zero WidthStep means packed rows.
func (i *ImageFrame) stride() int {
	if i.WidthStep == 0 {
		return i.RowBytes()
	}
	return i.WidthStep
}

// IsEmpty reports whether the frame has no pixels to show.
func (i *ImageFrame) IsEmpty() bool {
	return i == nil || i.Width <= 0 || i.Height <= 0 || len(i.Pixels) == 0
}

// RowBytes is the number of meaningful bytes in a row, excluding padding.
func (i *ImageFrame) RowBytes() int {
	return i.Width * i.Format.PixelBytes()
}

// IsContiguous reports whether rows are packed without padding.
func (i *ImageFrame) IsContiguous() bool {
	return i.stride() == i.RowBytes()
}

// ContiguousPixels returns the pixel rows without padding. It returns Pixels
// itself when the frame is already contiguous. The frame must be valid.
func (i *ImageFrame) ContiguousPixels() []byte {
	rb := i.RowBytes()
	if i.IsContiguous() {
		return i.Pixels[:rb*i.Height]
	}
	step := i.stride()
	out := make([]byte, rb*i.Height)
	for y := 0; y < i.Height; y++ {
		copy(out[y*rb:(y+1)*rb], i.Pixels[y*step:])
	}
	return out
}

// MatView returns a Mat over the frame's pixels. For contiguous frames the Mat
// shares memory with Pixels, so it must not outlive the frame and writes to it
// are visible in the frame. The caller closes the Mat.
func (i *ImageFrame) MatView() (gocv.Mat, error) {
	if i.IsEmpty() {
		return gocv.NewMat(), ErrEmpty
	}
	if err := i.Validate(); err != nil {
		return gocv.NewMat(), err
	}
	info := formats[i.Format]
	if info.planar {
		return gocv.NewMat(), ErrPlanar
	}
	return gocv.NewMatFromBytes(i.Height, i.Width, info.matType, i.ContiguousPixels())
}

// FromMat copies an 8-bit Mat into a new frame of format f. The Mat's channel
// count must match f.
func FromMat(m gocv.Mat, f Format) (*ImageFrame, error) {
	if m.Empty() {
		return nil, ErrEmpty
	}
	if m.Channels() != f.Channels() {
		return nil, fmt.Errorf("frame: mat has %d channels, %v needs %d", m.Channels(), f, f.Channels())
	}
	return FromBytes(f, m.Cols(), m.Rows(), 0, m.ToBytes())
}
