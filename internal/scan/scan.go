// Package scan reads QR symbols out of raster images.
package scan

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNotFound means the image was read but holds no QR symbol. Callers must
// treat this as a distinct outcome, not a processing failure.
var ErrNotFound = errors.New("no QR code found in image")

// ErrUnreadableImage means the bytes could not be decoded as an image at all.
var ErrUnreadableImage = errors.New("image could not be read")

// Point is a pixel coordinate in the scanned image.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Corners are the four corner points of the detected symbol.
type Corners struct {
	TopLeft     Point `json:"top_left"`
	TopRight    Point `json:"top_right"`
	BottomLeft  Point `json:"bottom_left"`
	BottomRight Point `json:"bottom_right"`
}

// Result is a successfully decoded symbol.
type Result struct {
	Text    string  `json:"text"`
	Corners Corners `json:"corners"`
}

// Decoder extracts the first QR symbol from raw image bytes.
type Decoder interface {
	Scan(data []byte) (*Result, error)
}

// qrDecoder implements Decoder on top of gozxing.
type qrDecoder struct{}

// NewDecoder creates the QR decoder.
func NewDecoder() Decoder {
	return &qrDecoder{}
}

// Scan decodes data as PNG/JPEG/GIF and searches it for a QR symbol.
func (d *qrDecoder) Scan(data []byte) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("prepare bitmap: %w", err)
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan image: %w", err)
	}
	return &Result{
		Text:    result.GetText(),
		Corners: corners(result.GetResultPoints()),
	}, nil
}

// corners maps zxing result points (bottom-left, top-left, top-right finder
// patterns) onto the four symbol corners. The fourth result point, when
// present, is the alignment pattern inside the symbol, so the bottom-right
// corner is always completed from the three finder patterns.
func corners(points []gozxing.ResultPoint) Corners {
	var c Corners
	if len(points) < 3 {
		return c
	}
	c.BottomLeft = point(points[0])
	c.TopLeft = point(points[1])
	c.TopRight = point(points[2])
	c.BottomRight = Point{
		X: c.TopRight.X + c.BottomLeft.X - c.TopLeft.X,
		Y: c.TopRight.Y + c.BottomLeft.Y - c.TopLeft.Y,
	}
	return c
}

func point(p gozxing.ResultPoint) Point {
	return Point{X: p.GetX(), Y: p.GetY()}
}
