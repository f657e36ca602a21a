package ssd1306

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

var errBus = errors.New("bus: nack")

// fakeTransport records payloads and answers with a scripted result.
type fakeTransport struct {
	addr   uint16
	sent   [][]byte
	result func(b []byte) (int, error)
}

func (f *fakeTransport) Addr() uint16 {
	return f.addr
}

func (f *fakeTransport) Send(b []byte) (int, error) {
	f.sent = append(f.sent, append([]byte(nil), b...))
	if f.result != nil {
		return f.result(b)
	}
	return len(b), nil
}

func TestCodecFraming(t *testing.T) {
	block := []byte{ModeData, 1, 2, 3, 4}
	testCases := []struct {
		name   string
		send   func(c *Codec) (int, error)
		expect []byte
	}{
		{"command", func(c *Codec) (int, error) { return c.SendCommand(0xAF) }, []byte{0x00, 0xAF}},
		{"command zero", func(c *Codec) (int, error) { return c.SendCommand(0x00) }, []byte{0x00, 0x00}},
		{"data byte", func(c *Codec) (int, error) { return c.SendDataByte(0x81) }, []byte{0x40, 0x81}},
		{"data block", func(c *Codec) (int, error) { return c.SendDataBlock(block, len(block)) }, block},
		{"data block prefix only", func(c *Codec) (int, error) { return c.SendDataBlock(block, 3) }, block[:3]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &fakeTransport{addr: DefaultAddr}
			n, err := tc.send(NewCodec(tr))
			require.NoError(t, err)
			require.Equal(t, len(tc.expect), n)
			require.Equal(t, [][]byte{tc.expect}, tr.sent)
		})
	}
}

func TestCodecBlockNotPrefixed(t *testing.T) {
	tr := &fakeTransport{addr: DefaultAddr}
	_, err := NewCodec(tr).SendDataBlock([]byte{0xAA, 0xBB}, 2)
	require.NoError(t, err)
	require.Equal(t, [][]byte{{0xAA, 0xBB}}, tr.sent)
}

func TestCodecBlockLengthOutOfRange(t *testing.T) {
	tr := &fakeTransport{addr: DefaultAddr}
	c := NewCodec(tr)
	_, err := c.SendDataBlock([]byte{ModeData, 1}, 3)
	require.Error(t, err)
	_, err = c.SendDataBlock([]byte{ModeData, 1}, -1)
	require.Error(t, err)
	require.Empty(t, tr.sent)
}

func TestCodecErrorPropagation(t *testing.T) {
	t.Run("bus error", func(t *testing.T) {
		tr := &fakeTransport{addr: DefaultAddr, result: func([]byte) (int, error) { return 0, errBus }}
		n, err := NewCodec(tr).SendCommand(0xAE)
		require.Equal(t, 0, n)
		require.ErrorIs(t, err, errBus)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		require.Equal(t, "command", te.Op)
		require.Equal(t, 2, te.Want)
	})

	t.Run("short count", func(t *testing.T) {
		tr := &fakeTransport{addr: DefaultAddr, result: func([]byte) (int, error) { return 1, nil }}
		n, err := NewCodec(tr).SendDataByte(0x01)
		require.Equal(t, 1, n)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		require.Equal(t, 1, te.Sent)
		require.Nil(t, te.Unwrap())
		require.Equal(t, "ssd1306: data: short transfer, sent 1 of 2 bytes", err.Error())
	})

	t.Run("no retry", func(t *testing.T) {
		tr := &fakeTransport{addr: DefaultAddr, result: func([]byte) (int, error) { return 0, errBus }}
		_, _ = NewCodec(tr).SendDataBlock([]byte{ModeData, 0xFF}, 2)
		require.Len(t, tr.sent, 1)
	})
}

func TestI2CTransport(t *testing.T) {
	bus := &i2ctest.Record{}
	tr := I2CTransport(bus, 0x3C)
	require.Equal(t, uint16(0x3C), tr.Addr())

	n, err := tr.Send([]byte{0x00, 0xAF})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, bus.Ops, 1)
	require.Equal(t, uint16(0x3C), bus.Ops[0].Addr)
	require.Equal(t, []byte{0x00, 0xAF}, bus.Ops[0].W)
}
