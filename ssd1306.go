package ssd1306

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/flavioheleno/ssd1306/frame"
	"github.com/golang/glog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Display geometry.
const (
	Width  = frame.Width
	Height = frame.Height
	// ScreenPixels is the size of a frame in bytes, one bit per pixel.
	ScreenPixels = frame.Size
	// BufferSize is the frame buffer size: the mode prefix followed by a frame.
	BufferSize = 1 + ScreenPixels
	// DefaultAddr is the only I²C address Attach accepts.
	DefaultAddr uint16 = 0x3C
)

// ErrorPolicy decides what scripted sequences (Init, SetCursorAtStart,
// ClearScreen) do when a transfer fails.
type ErrorPolicy int

const (
	// BestEffort runs every step, logs failures and reports success.
	BestEffort ErrorPolicy = iota
	// Strict stops at the first failed step and returns its error.
	Strict
)

func (p ErrorPolicy) String() string {
	switch p {
	case BestEffort:
		return "best-effort"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Addr is the I²C address used by NewI2C (default: 0x3C).
	Addr uint16
	// Policy applies to the scripted sequences.
	Policy ErrorPolicy
	// Splash is the frame pushed after the power-on script. It must be
	// ScreenPixels bytes; nil uses frame.Logo().
	Splash []byte
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Addr:   DefaultAddr,
	Policy: BestEffort,
}

// Dev is an attached display controller.
//
// Dev does no locking. Callers must serialize every method call.
type Dev struct {
	// Communication
	t     Transport
	codec *Codec
	addr  uint16

	policy ErrorPolicy
	splash []byte

	// buf[0] is the mode prefix, buf[1:BufferSize] the frame. The trailing
	// byte is padding so that a write of BufferSize bytes copied at index 1
	// stays in bounds; it is never transmitted.
	buf []byte
	// next is lazy initialized on first Draw().
	next *image1bit.VerticalLSB

	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// NewI2C attaches to a SSD1306 on bus.
//
// opts can be nil to use DefaultOpts.
func NewI2C(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultAddr
	}
	return Attach(I2CTransport(bus, addr), opts)
}

// Attach binds t, allocates the frame buffer and runs Init.
//
// A peer at any address other than DefaultAddr is rejected before anything
// is sent.
func Attach(t Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if a := t.Addr(); a != DefaultAddr {
		glog.Errorf("ssd1306: wrong i2c address %#02x", a)
		return nil, &AddressMismatchError{Got: a, Want: DefaultAddr}
	}
	splash := opts.Splash
	if splash == nil {
		splash = frame.Logo()
	}
	if len(splash) != ScreenPixels {
		return nil, fmt.Errorf("ssd1306: invalid splash length; expected %d bytes, got %d bytes", ScreenPixels, len(splash))
	}

	d := &Dev{
		t:      t,
		codec:  NewCodec(t),
		addr:   t.Addr(),
		policy: opts.Policy,
		splash: splash,
		buf:    make([]byte, BufferSize+1),
	}
	d.buf[0] = ModeData

	glog.Infof("ssd1306: attaching %s (policy %s)", d, d.policy)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init runs the power-on script, then overwrites the controller RAM with the
// splash frame.
//
// Re-running it on an initialized display re-issues every setting.
func (d *Dev) Init() error {
	if d.halted {
		return ErrHalted
	}
	if err := d.run("init", InitSequence()); err != nil {
		return err
	}
	glog.Info("ssd1306: display initialized")

	copy(d.buf[1:1+ScreenPixels], d.splash)
	return d.pushBlock("splash", ScreenPixels)
}

// SetCursorAtStart sets the column and page ranges to the full display so the
// next data block starts at the top-left pixel.
func (d *Dev) SetCursorAtStart() error {
	if d.halted {
		return ErrHalted
	}
	return d.run("cursor", cursorScript)
}

// ClearScreen resets the cursor, zeroes the frame buffer and sends it.
func (d *Dev) ClearScreen() error {
	if d.halted {
		return ErrHalted
	}
	if err := d.run("cursor", cursorScript); err != nil {
		return err
	}
	clear(d.buf[1:])
	return d.pushBlock("clear", ScreenPixels)
}

// HandleWrite copies p into the frame buffer and performs the action selected
// by its first byte. See WriteFrom.
func (d *Dev) HandleWrite(p []byte, off int64) (int, error) {
	return d.WriteFrom(bytes.NewReader(p), len(p), off)
}

// WriteFrom copies up to count bytes from r into the frame buffer, right
// after the mode prefix, then decodes the first frame byte:
//
//	0x00   sends command 0x00
//	0x69   clears the screen
//	0x68   resets the cursor
//	other  sends the whole buffer as a frame
//
// At most BufferSize-off bytes are copied. off only limits the copy: data
// always lands at the start of the frame and nothing carries over between
// calls. An off past BufferSize copies and sends nothing.
//
// The returned count is the number of bytes copied. A short read from r is
// logged and does not stop the action.
func (d *Dev) WriteFrom(r io.Reader, count int, off int64) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if off < 0 || off > BufferSize {
		glog.Errorf("ssd1306: cannot write at offset %d, end of frame", off)
		return 0, ErrOffsetOutOfRange
	}
	n := max(count, 0)
	if int64(n)+off > BufferSize {
		n = BufferSize - int(off)
	}

	copied, err := io.ReadFull(r, d.buf[1:1+n])
	if copied < n {
		glog.Errorf("ssd1306: short copy, could only write %d of %d bytes: %v", copied, n, err)
	}

	req := Decode(d.buf[1])
	if err := d.dispatch(req); err != nil {
		glog.Errorf("ssd1306: %s write failed: %v", req.Action, err)
		return copied, err
	}
	return copied, nil
}

// Write implements io.Writer on top of HandleWrite at offset 0.
//
// A write longer than BufferSize is truncated and reported with
// io.ErrShortWrite.
func (d *Dev) Write(p []byte) (int, error) {
	n, err := d.HandleWrite(p, 0)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Read implements io.Reader. The display is write-only: it always returns
// io.EOF.
func (d *Dev) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func (d *Dev) dispatch(req Request) error {
	switch req.Action {
	case ActionCommand:
		_, err := d.codec.SendCommand(req.Opcode)
		return err
	case ActionClear:
		return d.ClearScreen()
	case ActionCursor:
		return d.SetCursorAtStart()
	default:
		d.buf[0] = ModeData
		_, err := d.codec.SendDataBlock(d.buf, BufferSize)
		return err
	}
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return frame.Bounds
}

// Draw implements display.Drawer.
//
// Only whole frames are transmitted: src is composed over the last drawn
// image, then the cursor is reset and the full frame is sent.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	if d.next == nil {
		d.next = frame.New()
	}
	draw.Src.Draw(d.next, r.Intersect(frame.Bounds), src, sp)

	if err := d.SetCursorAtStart(); err != nil {
		return err
	}
	copy(d.buf[1:1+ScreenPixels], d.next.Pix)
	d.buf[0] = ModeData
	_, err := d.codec.SendDataBlock(d.buf, BufferSize)
	return err
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.run("contrast", []byte{byte(SetContrast), level})
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	if d.halted {
		return ErrHalted
	}
	op := NormalDisplay
	if blackOnWhite {
		op = InvertDisplay
	}
	_, err := d.codec.SendCommand(byte(op))
	return err
}

// Halt clears the screen, releases the frame buffer and unbinds the
// transport. The Dev cannot be used afterward.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	err := d.ClearScreen()
	d.buf = nil
	d.next = nil
	d.codec = nil
	d.t = nil
	d.halted = true
	glog.Infof("ssd1306: detached %s", d)
	return err
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%#02x, %dx%d}", d.addr, Width, Height)
}

// run sends seq one command byte per transfer, honoring the error policy.
func (d *Dev) run(name string, seq []byte) error {
	var first error
	for i, op := range seq {
		if _, err := d.codec.SendCommand(op); err != nil {
			err = fmt.Errorf("ssd1306: %s step %d (%#02x): %w", name, i, op, err)
			if d.policy == Strict {
				return err
			}
			glog.Warningf("%v; continuing", err)
			if first == nil {
				first = err
			}
		}
	}
	if first != nil {
		glog.Warningf("ssd1306: %s completed with errors, first: %v", name, first)
	}
	return nil
}

// pushBlock sends buf[:n] as a data block, honoring the error policy.
func (d *Dev) pushBlock(name string, n int) error {
	d.buf[0] = ModeData
	_, err := d.codec.SendDataBlock(d.buf, n)
	if err == nil {
		return nil
	}
	err = fmt.Errorf("ssd1306: %s: %w", name, err)
	if d.policy == Strict {
		return err
	}
	glog.Warningf("%v; ignored", err)
	return nil
}
