package frame

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Panel geometry.
const (
	Width  = 128
	Height = 64
	Pages  = Height / 8
	// Size is the number of bytes in a frame.
	Size = Width * Pages
)

// Bounds is the rectangle covered by a frame.
var Bounds = image.Rect(0, 0, Width, Height)

// face is the font used by Text and Logo. Glyphs are 7x13.
var face font.Face = basicfont.Face7x13

// New returns a blank image whose Pix is a frame.
func New() *image1bit.VerticalLSB {
	return image1bit.NewVerticalLSB(Bounds)
}

// FromImage renders src, anchored at its own Min point, into a new frame.
// Colors are thresholded by image1bit.BitModel.
func FromImage(src image.Image) []byte {
	if img, ok := src.(*image1bit.VerticalLSB); ok && img.Rect == Bounds {
		// Already in panel layout.
		return append([]byte(nil), img.Pix...)
	}
	img := New()
	draw.Draw(img, Bounds, src, src.Bounds().Min, draw.Src)
	return img.Pix
}

// Text renders up to one line per 13 rows, left aligned. Lines past the
// bottom of the panel are dropped.
func Text(lines ...string) []byte {
	img := New()
	drawLines(img, lines)
	return img.Pix
}

// Logo returns the frame pushed at power-on: a one pixel border with the
// controller name centered.
func Logo() []byte {
	img := New()
	for x := 0; x < Width; x++ {
		img.SetBit(x, 0, image1bit.On)
		img.SetBit(x, Height-1, image1bit.On)
	}
	for y := 0; y < Height; y++ {
		img.SetBit(0, y, image1bit.On)
		img.SetBit(Width-1, y, image1bit.On)
	}
	const name = "SSD1306"
	w := font.MeasureString(face, name).Ceil()
	m := face.Metrics()
	baseline := (Height + m.Ascent.Ceil() - m.Descent.Ceil()) / 2
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(image1bit.On),
		Face: face,
		Dot:  fixed.P((Width-w)/2, baseline),
	}
	d.DrawString(name)
	return img.Pix
}

func drawLines(img *image1bit.VerticalLSB, lines []string) {
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	ascent := m.Ascent.Ceil()
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(image1bit.On),
		Face: face,
	}
	for i, line := range lines {
		baseline := ascent + i*lineHeight
		if baseline > Height {
			break
		}
		d.Dot = fixed.P(0, baseline)
		d.DrawString(line)
	}
}
