package zxcore_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/zxcore"
	"github.com/ericlevine/zxcore/bitutil"
)

func grayImage(width, height int, pix ...byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)
	return img
}

func sourceRows(t *testing.T, source zxcore.LuminanceSource) [][]byte {
	t.Helper()
	rows := make([][]byte, source.Height())
	for y := range rows {
		row, err := source.Row(y, nil)
		require.NoError(t, err)
		rows[y] = row[:source.Width()]
	}
	return rows
}

func TestImageLuminanceSourceGray(t *testing.T) {
	source := zxcore.NewImageLuminanceSource(grayImage(3, 2, 1, 2, 3, 4, 5, 6))
	assert.Equal(t, 3, source.Width())
	assert.Equal(t, 2, source.Height())
	assert.Equal(t, [][]byte{{1, 2, 3}, {4, 5, 6}}, sourceRows(t, source))

	matrix, err := source.Matrix()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, matrix)
}

func TestImageLuminanceSourcePixelConversion(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want byte
	}{
		{"black", color.RGBA{0, 0, 0, 0xFF}, 0},
		{"white", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, 0xFF},
		{"grey passthrough", color.RGBA{0x7F, 0x7F, 0x7F, 0xFF}, 0x7F},
		{"red", color.RGBA{0xFF, 0, 0, 0xFF}, 76},
		{"green", color.RGBA{0, 0xFF, 0, 0xFF}, 150},
		{"blue", color.RGBA{0, 0, 0xFF, 0xFF}, 29},
		{"transparent", color.RGBA{0, 0, 0, 0}, 0xFF},
		{"half transparent white", color.NRGBA{0xFF, 0xFF, 0xFF, 0x80}, 0xFF},
		{"half transparent black", color.NRGBA{0, 0, 0, 0x80}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
			img.Set(0, 0, tt.c)
			row, err := zxcore.NewImageLuminanceSource(img).Row(0, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, row[0])
		})
	}
}

func TestImageLuminanceSourceRect(t *testing.T) {
	img := grayImage(4, 4,
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15)
	source, err := zxcore.NewImageLuminanceSourceRect(img, 1, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{5, 6}, {9, 10}}, sourceRows(t, source))

	cropped, err := source.Crop(1, 0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{6}, {10}}, sourceRows(t, cropped))

	_, err = source.Crop(1, 1, 2, 1)
	assert.ErrorIs(t, err, zxcore.ErrInvalidArgument)
	_, err = zxcore.NewImageLuminanceSourceRect(img, 3, 0, 2, 1)
	assert.ErrorIs(t, err, zxcore.ErrInvalidArgument)
}

func TestImageLuminanceSourceSubImage(t *testing.T) {
	img := grayImage(4, 4,
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15)
	sub := img.SubImage(image.Rect(1, 1, 3, 3))
	source := zxcore.NewImageLuminanceSource(sub)
	assert.Equal(t, [][]byte{{5, 6}, {9, 10}}, sourceRows(t, source))

	rotated, err := source.RotateCounterClockwise()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{6, 10}, {5, 9}}, sourceRows(t, rotated))
}

func TestImageLuminanceSourceRotate(t *testing.T) {
	img := grayImage(3, 2, 1, 2, 3, 4, 5, 6)
	source := zxcore.NewImageLuminanceSource(img)
	require.True(t, source.RotateSupported())

	rotated, err := source.RotateCounterClockwise()
	require.NoError(t, err)
	assert.Equal(t, 2, rotated.Width())
	assert.Equal(t, 3, rotated.Height())
	assert.Equal(t, [][]byte{{3, 6}, {2, 5}, {1, 4}}, sourceRows(t, rotated))

	// Four turns come back to the start.
	turned := zxcore.LuminanceSource(source)
	for i := 0; i < 4; i++ {
		turned, err = turned.RotateCounterClockwise()
		require.NoError(t, err)
	}
	assert.Equal(t, sourceRows(t, source), sourceRows(t, turned))

	assert.Equal(t, [][]byte{{1, 2, 3}, {4, 5, 6}}, sourceRows(t, source), "rotation must not modify the source")
}

func TestImageLuminanceSourceRotateCropped(t *testing.T) {
	img := grayImage(3, 2, 1, 2, 3, 4, 5, 6)
	source, err := zxcore.NewImageLuminanceSourceRect(img, 1, 0, 2, 2)
	require.NoError(t, err)

	rotated, err := source.RotateCounterClockwise()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{3, 6}, {2, 5}}, sourceRows(t, rotated))
}

func TestImageLuminanceSourceRotate45Unsupported(t *testing.T) {
	source := zxcore.NewImageLuminanceSource(grayImage(2, 2, 0, 0, 0, 0))
	_, err := source.RotateCounterClockwise45()
	assert.ErrorIs(t, err, zxcore.ErrInternalInconsistency)
}

func TestImageLuminanceSourceInvertRotate(t *testing.T) {
	source := zxcore.NewImageLuminanceSource(grayImage(2, 1, 0, 0xFF))
	rotated, err := source.Invert().RotateCounterClockwise()
	require.NoError(t, err)
	require.IsType(t, &zxcore.InvertedLuminanceSource{}, rotated)
	assert.Equal(t, [][]byte{{0x00}, {0xFF}}, sourceRows(t, rotated))
}

func TestBitMatrixToImage(t *testing.T) {
	m, err := bitutil.ParseStringMatrix("X.\n.X\n", "X", ".")
	require.NoError(t, err)
	img := zxcore.BitMatrixToImage(m)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, []byte{0, 0xFF, 0xFF, 0}, img.Pix)

	back := zxcore.NewImageLuminanceSource(img)
	assert.Equal(t, [][]byte{{0, 0xFF}, {0xFF, 0}}, sourceRows(t, back))
}
