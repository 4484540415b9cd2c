package scan_test

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/qrgen/internal/render"
	"github.com/tempizhere/qrgen/internal/scan"
)

func TestScanRoundTrip(t *testing.T) {
	const text = "https://example.com/round-trip"

	img, err := render.NewEncoder().Render(text, render.Normalize(render.RawOptions{}))
	require.NoError(t, err)

	result, err := scan.NewDecoder().Scan(img.PNG)
	require.NoError(t, err)
	assert.Equal(t, text, result.Text)

	// corners describe the symbol left to right, top to bottom
	assert.Greater(t, result.Corners.TopRight.X, result.Corners.TopLeft.X)
	assert.Greater(t, result.Corners.BottomLeft.Y, result.Corners.TopLeft.Y)
}

func TestScanNoSymbol(t *testing.T) {
	blank := image.NewRGBA(image.Rect(0, 0, 120, 120))
	draw.Draw(blank, blank.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, blank))

	_, err := scan.NewDecoder().Scan(buf.Bytes())
	require.Error(t, err)
	assert.ErrorIs(t, err, scan.ErrNotFound)
}

func TestScanUnreadableBytes(t *testing.T) {
	_, err := scan.NewDecoder().Scan([]byte("definitely not an image"))
	require.Error(t, err)
	assert.ErrorIs(t, err, scan.ErrUnreadableImage)
	assert.NotErrorIs(t, err, scan.ErrNotFound)
}
