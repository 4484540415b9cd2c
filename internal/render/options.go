// Package render normalizes rendering options and encodes QR payloads
// into raster and vector images.
package render

import (
	"strconv"
	"strings"
)

// Format is the requested output format.
type Format string

const (
	FormatPNG    Format = "png"
	FormatSVG    Format = "svg"
	FormatBase64 Format = "base64"
)

const (
	defaultWidth  = 300
	minWidth      = 100
	maxWidth      = 2000
	defaultMargin = 2
	maxMargin     = 10
)

// Options is the canonical rendering options record. After Normalize every
// field is within its stated range.
type Options struct {
	Width      int    // image width in pixels
	Margin     int    // quiet zone in modules
	DarkColor  string // 6-hex-digit, no leading #
	LightColor string
	Level      string // L, M, Q or H
	Format     Format
}

// RawOptions carries the caller-supplied option strings before normalization.
type RawOptions struct {
	Size            string
	Margin          string
	Color           string
	BgColor         string
	ErrorCorrection string
	Format          string
}

// Normalize coerces raw options into a valid Options record. It is total:
// out-of-range or unparseable input falls back to a default, never an error.
func Normalize(raw RawOptions) Options {
	opts := Options{
		Width:      clamp(parseInt(raw.Size, defaultWidth), minWidth, maxWidth),
		Margin:     clamp(parseInt(raw.Margin, defaultMargin), 0, maxMargin),
		DarkColor:  stripHash(raw.Color, "000000"),
		LightColor: stripHash(raw.BgColor, "ffffff"),
		Level:      "M",
		Format:     FormatPNG,
	}
	switch level := strings.ToUpper(strings.TrimSpace(raw.ErrorCorrection)); level {
	case "L", "M", "Q", "H":
		opts.Level = level
	}
	switch format := Format(strings.ToLower(strings.TrimSpace(raw.Format))); format {
	case FormatPNG, FormatSVG, FormatBase64:
		opts.Format = format
	}
	return opts
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stripHash drops a leading # but performs no further validation; malformed
// hex is passed through and surfaces as an encoder failure.
func stripHash(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return strings.TrimPrefix(s, "#")
}
