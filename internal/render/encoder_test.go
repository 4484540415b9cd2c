package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPNG(t *testing.T) {
	enc := NewEncoder()
	opts := Normalize(RawOptions{})

	img, err := enc.Render("https://example.com", opts)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, img.Format)
	require.NotEmpty(t, img.PNG)
	assert.Empty(t, img.SVG)

	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.Equal(t, bounds.Dx(), bounds.Dy())
	assert.LessOrEqual(t, bounds.Dx(), 300)
	assert.GreaterOrEqual(t, bounds.Dx(), 100)

	// corner pixel lies in the quiet zone
	r, g, b, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRenderSVG(t *testing.T) {
	enc := NewEncoder()
	opts := Normalize(RawOptions{Format: "svg", Color: "FF0000", BgColor: "0000FF"})

	img, err := enc.Render("hello", opts)
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, img.Format)
	assert.True(t, strings.HasPrefix(img.SVG, "<svg "))
	assert.True(t, strings.HasSuffix(img.SVG, "</svg>"))
	assert.Contains(t, img.SVG, `fill="#FF0000"`)
	assert.Contains(t, img.SVG, `fill="#0000FF"`)
	assert.Contains(t, img.SVG, "viewBox")
	assert.Empty(t, img.PNG)
}

func TestRenderBase64(t *testing.T) {
	enc := NewEncoder()
	opts := Normalize(RawOptions{Format: "base64"})

	img, err := enc.Render("hello", opts)
	require.NoError(t, err)
	assert.Equal(t, FormatBase64, img.Format)
	assert.True(t, strings.HasPrefix(img.DataURL(), "data:image/png;base64,"))
}

func TestRenderMalformedColor(t *testing.T) {
	enc := NewEncoder()
	opts := Normalize(RawOptions{Color: "nothex"})

	_, err := enc.Render("hello", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hex color")

	opts = Normalize(RawOptions{BgColor: "fff"})
	_, err = enc.Render("hello", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hex color")
}

func TestRenderEmptyPayload(t *testing.T) {
	enc := NewEncoder()
	_, err := enc.Render("", Normalize(RawOptions{}))
	assert.Error(t, err)
}
