package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Encoder turns a payload string and options into an image.
type Encoder interface {
	Render(text string, opts Options) (*Rendered, error)
}

// Rendered is the encoder output for one payload.
type Rendered struct {
	Format Format
	PNG    []byte // set for png and base64 output
	SVG    string // set for svg output
}

// DataURL returns the PNG as a base64 data URL.
func (r *Rendered) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(r.PNG)
}

// qrEncoder implements Encoder on top of skip2/go-qrcode.
type qrEncoder struct{}

// NewEncoder creates the QR encoder.
func NewEncoder() Encoder {
	return &qrEncoder{}
}

// Render encodes text into a QR symbol and rasterizes it per opts.
func (e *qrEncoder) Render(text string, opts Options) (*Rendered, error) {
	if text == "" {
		return nil, fmt.Errorf("payload text is empty")
	}
	qr, err := qrcode.New(text, recoveryLevel(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	// the quiet zone is drawn here from opts.Margin, not by the library
	qr.DisableBorder = true
	grid := qr.Bitmap()

	if opts.Format == FormatSVG {
		return &Rendered{Format: FormatSVG, SVG: renderSVG(grid, opts)}, nil
	}
	data, err := renderPNG(grid, opts)
	if err != nil {
		return nil, err
	}
	return &Rendered{Format: opts.Format, PNG: data}, nil
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// renderPNG scales the module grid to the requested width. The delivered
// width is the largest whole multiple of the grid not exceeding opts.Width.
func renderPNG(grid [][]bool, opts Options) ([]byte, error) {
	dark, err := parseHexColor(opts.DarkColor)
	if err != nil {
		return nil, fmt.Errorf("dark color: %w", err)
	}
	light, err := parseHexColor(opts.LightColor)
	if err != nil {
		return nil, fmt.Errorf("light color: %w", err)
	}

	modules := len(grid)
	total := modules + 2*opts.Margin
	scale := opts.Width / total
	if scale < 1 {
		scale = 1
	}
	size := total * scale

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(light), image.Point{}, draw.Src)
	for y, row := range grid {
		for x, on := range row {
			if !on {
				continue
			}
			px := (x + opts.Margin) * scale
			py := (y + opts.Margin) * scale
			draw.Draw(img, image.Rect(px, py, px+scale, py+scale), image.NewUniform(dark), image.Point{}, draw.Src)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

// renderSVG emits one unit rect per dark module inside a viewBox sized in
// modules, so the markup scales without artifacts.
func renderSVG(grid [][]bool, opts Options) string {
	modules := len(grid)
	total := modules + 2*opts.Margin

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		opts.Width, opts.Width, total, total)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#%s"/>`, total, total, opts.LightColor)
	for y, row := range grid {
		for x, on := range row {
			if on {
				fmt.Fprintf(&b, `<rect x="%d" y="%d" width="1" height="1" fill="#%s"/>`,
					x+opts.Margin, y+opts.Margin, opts.DarkColor)
			}
		}
	}
	b.WriteString("</svg>")
	return b.String()
}

func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
