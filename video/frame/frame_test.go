package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		f         Format
		name      string
		channels  int
		byteDepth int
	}{
		{Gray8, "GRAY8", 1, 1},
		{SRGB, "SRGB", 3, 1},
		{SRGBA, "SRGBA", 4, 1},
		{Gray16, "GRAY16", 1, 2},
		{SRGBA64, "SRGBA64", 4, 2},
		{Vec32F2, "VEC32F2", 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.f.String())
			assert.Equal(t, tt.channels, tt.f.Channels())
			assert.Equal(t, tt.byteDepth, tt.f.ByteDepth())
			assert.True(t, tt.f.Valid())
		})
	}

	assert.False(t, Unknown.Valid())
	assert.Equal(t, "UNKNOWN(99)", Format(99).String())
	assert.Equal(t, 0, Format(99).Channels())
}

func TestNewIsContiguous(t *testing.T) {
	f := New(SRGB, 4, 3)
	assert.Equal(t, 12, f.WidthStep)
	assert.Len(t, f.Pixels, 36)
	assert.True(t, f.IsContiguous())
	assert.False(t, f.IsEmpty())
}

func TestIsEmpty(t *testing.T) {
	var nilFrame *ImageFrame
	assert.True(t, nilFrame.IsEmpty())
	assert.True(t, (&ImageFrame{Format: Gray8}).IsEmpty())
	assert.True(t, New(Gray8, 0, 10).IsEmpty())
	assert.True(t, (&ImageFrame{Format: Gray8, Width: 2, Height: 2}).IsEmpty())
}

func TestFromBytesValidates(t *testing.T) {
	_, err := FromBytes(Unknown, 2, 2, 0, make([]byte, 4))
	assert.Error(t, err)

	_, err = FromBytes(SRGB, 2, 2, 4, make([]byte, 16))
	assert.Error(t, err, "step shorter than a row")

	_, err = FromBytes(SRGB, 2, 2, 8, make([]byte, 10))
	assert.Error(t, err, "buffer too short")

	f, err := FromBytes(SRGB, 2, 2, 8, make([]byte, 14))
	require.NoError(t, err)
	assert.False(t, f.IsContiguous())
}

func TestContiguousPixelsStripsPadding(t *testing.T) {
	pix := []byte{
		1, 2, 0xff, 0xff,
		3, 4, 0xff, 0xff,
	}
	f, err := FromBytes(Gray8, 2, 2, 4, pix)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, f.ContiguousPixels())

	packed := New(Gray8, 2, 2)
	assert.Same(t, &packed.Pixels[0], &packed.ContiguousPixels()[0])
}

func TestMatView(t *testing.T) {
	f := New(SRGB, 4, 2)
	for i := range f.Pixels {
		f.Pixels[i] = byte(i)
	}
	m, err := f.MatView()
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 4, m.Cols())
	assert.Equal(t, 3, m.Channels())
	assert.Equal(t, f.Pixels, m.ToBytes())
}

func TestMatViewErrors(t *testing.T) {
	m, err := (&ImageFrame{Format: SRGB}).MatView()
	m.Close()
	assert.True(t, errors.Is(err, ErrEmpty))

	m, err = New(YCbCr420P, 4, 4).MatView()
	m.Close()
	assert.True(t, errors.Is(err, ErrPlanar))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		img  *ImageFrame
		err  error
	}{
		{"nil", nil, ErrEmpty},
		{"unknown format", &ImageFrame{Format: Format(99), Width: 1, Height: 1, Pixels: []byte{0}}, ErrUnknownFormat},
		{"negative size", &ImageFrame{Format: Gray8, Width: -1, Height: 2}, ErrGeometry},
		{"step below row", &ImageFrame{Format: SRGB, Width: 2, Height: 2, WidthStep: 5, Pixels: make([]byte, 12)}, ErrGeometry},
		{"short buffer", &ImageFrame{Format: Gray8, Width: 4, Height: 4, WidthStep: 4, Pixels: make([]byte, 8)}, ErrGeometry},
		{"short planar", &ImageFrame{Format: YCbCr420P, Width: 4, Height: 4, WidthStep: 4, Pixels: make([]byte, 16)}, ErrGeometry},
		{"packed zero step", &ImageFrame{Format: Gray8, Width: 2, Height: 2, Pixels: []byte{1, 2, 3, 4}}, nil},
		{"unpadded last row", &ImageFrame{Format: Gray8, Width: 2, Height: 2, WidthStep: 4, Pixels: make([]byte, 6)}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.img.Validate()
			if c.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, c.err), "got %v", err)
		})
	}
}

func TestZeroWidthStepIsPacked(t *testing.T) {
	img := &ImageFrame{Format: Gray8, Width: 2, Height: 2, Pixels: []byte{1, 2, 3, 4}}
	assert.True(t, img.IsContiguous())
	assert.Equal(t, []byte{1, 2, 3, 4}, img.ContiguousPixels())

	m, err := img.MatView()
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, []byte{1, 2, 3, 4}, m.ToBytes())
}

func TestMatViewRejectsShortBuffer(t *testing.T) {
	m, err := (&ImageFrame{Format: Gray8, Width: 4, Height: 4, WidthStep: 4, Pixels: make([]byte, 8)}).MatView()
	m.Close()
	assert.True(t, errors.Is(err, ErrGeometry))
}

func TestFromMatRoundTrip(t *testing.T) {
	src := New(SRGBA, 3, 2)
	for i := range src.Pixels {
		src.Pixels[i] = byte(255 - i)
	}
	m, err := src.MatView()
	require.NoError(t, err)
	defer m.Close()

	dst, err := FromMat(m, SRGBA)
	require.NoError(t, err)
	assert.Equal(t, src.Pixels, dst.Pixels)

	_, err = FromMat(m, SRGB)
	assert.Error(t, err)
}
