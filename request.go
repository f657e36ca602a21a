package ssd1306

import "fmt"

// Discriminator values recognized in the first byte of a write.
const (
	DiscriminatorCommand byte = 0x00
	DiscriminatorCursor  byte = 0x68
	DiscriminatorClear   byte = 0x69
)

// Action is what a write asks the controller to do.
type Action int

// Possible actions, checked in this order.
const (
	ActionCommand Action = iota
	ActionClear
	ActionCursor
	ActionFrame
)

func (a Action) String() string {
	switch a {
	case ActionCommand:
		return "command"
	case ActionClear:
		return "clear"
	case ActionCursor:
		return "cursor"
	case ActionFrame:
		return "frame"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Request is a decoded write.
type Request struct {
	Action Action
	// Opcode is the command sent for ActionCommand. It is the discriminator
	// itself, so it is always 0x00.
	Opcode byte
}

// Decode maps the first payload byte of a write to a Request.
//
// The sentinels overlap with the command space: 0x00 is also "set lower
// column 0". A write starting with 0x00 therefore can only ever send opcode
// 0x00, whatever follows it.
func Decode(discriminator byte) Request {
	switch discriminator {
	case DiscriminatorCommand:
		return Request{Action: ActionCommand, Opcode: discriminator}
	case DiscriminatorClear:
		return Request{Action: ActionClear}
	case DiscriminatorCursor:
		return Request{Action: ActionCursor}
	default:
		return Request{Action: ActionFrame}
	}
}
