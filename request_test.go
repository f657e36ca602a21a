package ssd1306

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		in     byte
		expect Request
	}{
		{0x00, Request{Action: ActionCommand, Opcode: 0x00}},
		{0x69, Request{Action: ActionClear}},
		{0x68, Request{Action: ActionCursor}},
		{0x01, Request{Action: ActionFrame}},
		{0x40, Request{Action: ActionFrame}},
		{0x67, Request{Action: ActionFrame}},
		{0x6A, Request{Action: ActionFrame}},
		{0xAF, Request{Action: ActionFrame}},
		{0xFF, Request{Action: ActionFrame}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%#02x", tc.in), func(t *testing.T) {
			require.Equal(t, tc.expect, Decode(tc.in))
		})
	}
}

func TestDecodeAllBytes(t *testing.T) {
	counts := map[Action]int{}
	for b := 0; b < 256; b++ {
		counts[Decode(byte(b)).Action]++
	}
	require.Equal(t, map[Action]int{
		ActionCommand: 1,
		ActionClear:   1,
		ActionCursor:  1,
		ActionFrame:   253,
	}, counts)
}

func TestActionString(t *testing.T) {
	require.Equal(t, "command", ActionCommand.String())
	require.Equal(t, "clear", ActionClear.String())
	require.Equal(t, "cursor", ActionCursor.String())
	require.Equal(t, "frame", ActionFrame.String())
	require.Equal(t, "Action(9)", Action(9).String())
}
