package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/flavioheleno/ssd1306/frame"
	"github.com/flavioheleno/ssd1306/internal/config"
)

// screen is the part of *ssd1306.Dev used by the shell.
type screen interface {
	HandleWrite(p []byte, off int64) (int, error)
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Bounds() image.Rectangle
}

// update is one push to the display: either raw bytes fed to the write
// protocol or an image drawn as a full frame.
type update struct {
	raw []byte
	img image.Image
}

func (u update) apply(s screen) error {
	if u.img != nil {
		return s.Draw(s.Bounds(), u.img, image.Point{})
	}
	n, err := s.HandleWrite(u.raw, 0)
	if err != nil {
		return err
	}
	if n < len(u.raw) {
		return fmt.Errorf("frame truncated to %d of %d bytes", n, len(u.raw))
	}
	return nil
}

// render builds the update for src at time now.
func render(src config.SourceConfig, now time.Time) (update, error) {
	switch src.Kind {
	case config.SourceFrame:
		raw, err := os.ReadFile(src.Path)
		if err != nil {
			return update{}, err
		}
		return update{raw: raw}, nil
	case config.SourceImage:
		img, err := decodeImage(src.Path)
		if err != nil {
			return update{}, err
		}
		return update{img: img}, nil
	case config.SourceText:
		lines := make([]string, len(src.Text))
		for i, l := range src.Text {
			lines[i] = now.Format(l)
		}
		return update{img: textImage(lines)}, nil
	}
	return update{}, fmt.Errorf("unknown source kind %q", src.Kind)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func textImage(lines []string) image.Image {
	img := frame.New()
	copy(img.Pix, frame.Text(lines...))
	return img
}
