package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	opts := Normalize(RawOptions{})
	assert.Equal(t, 300, opts.Width)
	assert.Equal(t, 2, opts.Margin)
	assert.Equal(t, "000000", opts.DarkColor)
	assert.Equal(t, "ffffff", opts.LightColor)
	assert.Equal(t, "M", opts.Level)
	assert.Equal(t, FormatPNG, opts.Format)
}

func TestNormalizeWidth(t *testing.T) {
	tests := []struct {
		name string
		size string
		want int
	}{
		{"in range", "500", 500},
		{"below min clamps", "50", 100},
		{"above max clamps", "5000", 2000},
		{"lower bound", "100", 100},
		{"upper bound", "2000", 2000},
		{"unparseable defaults", "abc", 300},
		{"empty defaults", "", 300},
		{"negative clamps", "-10", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(RawOptions{Size: tt.size}).Width)
		})
	}
}

func TestNormalizeMargin(t *testing.T) {
	assert.Equal(t, 4, Normalize(RawOptions{Margin: "4"}).Margin)
	assert.Equal(t, 0, Normalize(RawOptions{Margin: "-3"}).Margin)
	assert.Equal(t, 10, Normalize(RawOptions{Margin: "99"}).Margin)
	assert.Equal(t, 2, Normalize(RawOptions{Margin: "x"}).Margin)
}

func TestNormalizeColors(t *testing.T) {
	opts := Normalize(RawOptions{Color: "#FF0000", BgColor: "#EEEEEE"})
	assert.Equal(t, "FF0000", opts.DarkColor)
	assert.Equal(t, "EEEEEE", opts.LightColor)

	// malformed hex is passed through, not rejected
	opts = Normalize(RawOptions{Color: "not-a-color"})
	assert.Equal(t, "not-a-color", opts.DarkColor)
}

func TestNormalizeLevel(t *testing.T) {
	assert.Equal(t, "H", Normalize(RawOptions{ErrorCorrection: "h"}).Level)
	assert.Equal(t, "Q", Normalize(RawOptions{ErrorCorrection: "Q"}).Level)
	assert.Equal(t, "M", Normalize(RawOptions{ErrorCorrection: "Z"}).Level)
	assert.Equal(t, "M", Normalize(RawOptions{}).Level)
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, FormatSVG, Normalize(RawOptions{Format: "SVG"}).Format)
	assert.Equal(t, FormatBase64, Normalize(RawOptions{Format: "base64"}).Format)
	assert.Equal(t, FormatPNG, Normalize(RawOptions{Format: "jpg"}).Format)
	assert.Equal(t, FormatPNG, Normalize(RawOptions{}).Format)
}
