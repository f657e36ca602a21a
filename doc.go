// Package ssd1306 controls a SSD1306 OLED display via I²C.
//
// The SSD1306 is a monochrome 128×64 OLED controller. Its RAM is split into 8
// pages of 8 pixel rows; each byte covers one column of a page with the least
// significant bit at the top.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C clock
//	SDA         → I²C data
//
// The driver only accepts the display at address 0x3C.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/host/v3"
//		"github.com/flavioheleno/ssd1306"
//		"github.com/flavioheleno/ssd1306/frame"
//	)
//
//	func main() {
//		host.Init()
//
//		bus, _ := i2creg.Open("")
//		defer bus.Close()
//
//		dev, _ := ssd1306.NewI2C(bus, nil)
//		defer dev.Halt()
//
//		dev.Write(frame.Text("hello", "world"))
//	}
//
// # Byte-stream Protocol
//
// Every write is a self-contained transaction. The bytes are copied into the
// frame buffer right after the mode prefix byte, then the first byte selects
// the action:
//
//	0x00   send command 0x00
//	0x69   clear the screen
//	0x68   reset the cursor to the top-left pixel
//	other  send the whole frame buffer as pixel data
//
// The remaining bytes are ignored for the first three actions. A frame whose
// first byte happens to be one of the sentinels is therefore not displayable
// through Write; use Draw instead.
//
// Reads always return io.EOF.
//
// # Error Policy
//
// The power-on script, the cursor reset and the screen clear are best effort
// by default: a failed transfer is logged and the sequence continues. Set
// Opts.Policy to Strict to stop at the first failure.
//
// # Logging
//
// The driver logs through github.com/golang/glog. Every bus transfer is
// traced at verbosity 2.
//
// # Compatibility with periph.io
//
// Dev implements display.Drawer from periph.io/x/conn/v3/display. Draw always
// transmits a full frame.
package ssd1306
