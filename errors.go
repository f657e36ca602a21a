package ssd1306

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressMismatch is returned by Attach when the bus peer is not the
	// display.
	ErrAddressMismatch = errors.New("ssd1306: address mismatch")
	// ErrOffsetOutOfRange is returned when a write starts past the end of the
	// frame buffer. Nothing is copied or sent.
	ErrOffsetOutOfRange = errors.New("ssd1306: offset beyond end of frame")
	// ErrHalted is returned by every operation after Halt.
	ErrHalted = errors.New("ssd1306: halted")
)

// AddressMismatchError reports the address of a rejected peer.
type AddressMismatchError struct {
	Got  uint16
	Want uint16
}

// Error implements error.
func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("ssd1306: wrong i2c address %#02x, expected %#02x", e.Got, e.Want)
}

// Is makes errors.Is(err, ErrAddressMismatch) hold.
func (e *AddressMismatchError) Is(target error) bool {
	return target == ErrAddressMismatch
}

// TransportError wraps a failed or short bus transfer.
type TransportError struct {
	Op   string
	Sent int
	Want int
	Err  error
}

// Error implements error.
func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ssd1306: %s: short transfer, sent %d of %d bytes", e.Op, e.Sent, e.Want)
	}
	return fmt.Sprintf("ssd1306: %s: sent %d of %d bytes: %v", e.Op, e.Sent, e.Want, e.Err)
}

// Unwrap returns the bus error, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}
