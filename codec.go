package ssd1306

import (
	"fmt"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
)

// Mode prefix bytes. The D/C# bit (bit 6) selects data when set.
const (
	ModeCommand byte = 0x00
	ModeData    byte = 0x40
)

// Transport sends a byte sequence to a fixed peripheral address.
//
// Send returns how many bytes the peer accepted. It is synchronous; one
// transfer is outstanding at a time.
type Transport interface {
	Addr() uint16
	Send(b []byte) (int, error)
}

// I2CTransport returns a Transport writing to addr on bus.
func I2CTransport(bus i2c.Bus, addr uint16) Transport {
	return &i2cTransport{d: &i2c.Dev{Bus: bus, Addr: addr}}
}

type i2cTransport struct {
	d *i2c.Dev
}

func (t *i2cTransport) Addr() uint16 {
	return t.d.Addr
}

func (t *i2cTransport) Send(b []byte) (int, error) {
	return t.d.Write(b)
}

func (t *i2cTransport) String() string {
	return t.d.String()
}

// Codec frames controller commands and data for a Transport.
//
// It holds no state besides the transport and never retries.
type Codec struct {
	t Transport
}

// NewCodec returns a Codec sending on t.
func NewCodec(t Transport) *Codec {
	return &Codec{t: t}
}

// SendCommand sends a single command byte with the command mode prefix.
func (c *Codec) SendCommand(op byte) (int, error) {
	return c.send("command", []byte{ModeCommand, op})
}

// SendDataByte sends a single data byte with the data mode prefix.
func (c *Codec) SendDataByte(v byte) (int, error) {
	return c.send("data", []byte{ModeData, v})
}

// SendDataBlock sends b[:n] verbatim. No mode prefix is injected: b[0] must
// already hold ModeData.
func (c *Codec) SendDataBlock(b []byte, n int) (int, error) {
	if n < 0 || n > len(b) {
		return 0, fmt.Errorf("ssd1306: data block length %d out of range [0, %d]", n, len(b))
	}
	return c.send("data block", b[:n])
}

func (c *Codec) send(op string, b []byte) (int, error) {
	if glog.V(2) {
		glog.Infof("ssd1306: %s, %d bytes", op, len(b))
	}
	n, err := c.t.Send(b)
	if err != nil || n < len(b) {
		return n, &TransportError{Op: op, Sent: n, Want: len(b), Err: err}
	}
	return n, nil
}
