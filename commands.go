package ssd1306

// Command is a SSD1306 controller opcode or parameter byte.
type Command byte

// Controller opcodes. See the SSD1306 datasheet, section 9 (command table).
const (
	SetLowColumn       Command = 0x00 // Page addressing mode only; also the write discriminator.
	SetMemoryMode      Command = 0x20
	SetColumnAddr      Command = 0x21
	SetPageAddr        Command = 0x22
	DeactivateScroll   Command = 0x2E
	SetStartLine       Command = 0x40 // Lower 6 bits select the line.
	SetContrast        Command = 0x81
	SetChargePump      Command = 0x8D
	SetSegmentRemap0   Command = 0xA0
	SetSegmentRemap127 Command = 0xA1 // Column 127 is mapped to SEG0.
	DisplayFollowRAM   Command = 0xA4
	DisplayAllOn       Command = 0xA5
	NormalDisplay      Command = 0xA6
	InvertDisplay      Command = 0xA7
	SetMultiplex       Command = 0xA8
	DisplayOff         Command = 0xAE
	DisplayOn          Command = 0xAF
	ComScanIncrement   Command = 0xC0
	ComScanDecrement   Command = 0xC8
	SetDisplayOffset   Command = 0xD3
	SetClockDiv        Command = 0xD5
	SetPrecharge       Command = 0xD9
	SetComPins         Command = 0xDA
	SetVcomDeselect    Command = 0xDB
)

// Parameter bytes used by the power-on script.
const (
	clockDefault    byte = 0x80 // Divide ratio 1, oscillator frequency reset value.
	multiplex64     byte = 0x3F // 1/64 duty.
	noOffset        byte = 0x00
	chargePumpOn    byte = 0x14
	horizontalMode  byte = 0x00
	comPinsAlt      byte = 0x12 // Alternative COM pin configuration, no left/right remap.
	contrastDefault byte = 0x7F
	prechargePeriod byte = 0xF1
	vcomDeselect    byte = 0x40
)

// Display extent used when resetting the cursor.
const (
	beginColumn byte = 0
	endColumn   byte = Width - 1
	beginPage   byte = 0
	endPage     byte = Height/8 - 1
)

// step is one entry of a command script: an opcode optionally followed by a
// single parameter byte.
type step struct {
	op       Command
	param    byte
	hasParam bool
}

func cmd(op Command) step {
	return step{op: op}
}

func cmdParam(op Command, param byte) step {
	return step{op: op, param: param, hasParam: true}
}

// bytes returns the command bytes of the step in transmission order.
func (s step) bytes() []byte {
	if s.hasParam {
		return []byte{byte(s.op), s.param}
	}
	return []byte{byte(s.op)}
}

// initScript is the power-on sequence. Every byte is sent as its own command
// transfer, in order. The charge pump must be enabled before DisplayOn and the
// addressing mode must be set before the first data block.
var initScript = []step{
	cmd(DisplayOff),
	cmdParam(SetClockDiv, clockDefault),
	cmdParam(SetMultiplex, multiplex64),
	cmdParam(SetDisplayOffset, noOffset),
	cmd(SetStartLine),
	cmdParam(SetChargePump, chargePumpOn),
	cmdParam(SetMemoryMode, horizontalMode),
	cmd(SetSegmentRemap127),
	cmd(ComScanDecrement),
	cmdParam(SetComPins, comPinsAlt),
	cmdParam(SetContrast, contrastDefault),
	cmdParam(SetPrecharge, prechargePeriod),
	cmdParam(SetVcomDeselect, vcomDeselect),
	cmd(DisplayFollowRAM),
	cmd(NormalDisplay),
	cmd(DeactivateScroll),
	cmd(DisplayOn),
}

// cursorScript addresses the full display so the next data block lands at
// column 0 of page 0.
var cursorScript = []byte{
	byte(SetColumnAddr), beginColumn, endColumn,
	byte(SetPageAddr), beginPage, endPage,
}

// InitSequence returns the command bytes sent by Init, in order.
func InitSequence() []byte {
	var out []byte
	for _, s := range initScript {
		out = append(out, s.bytes()...)
	}
	return out
}

// CursorSequence returns the command bytes sent by SetCursorAtStart, in order.
func CursorSequence() []byte {
	return append([]byte(nil), cursorScript...)
}
