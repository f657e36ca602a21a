// Package frame builds raw frames for a 128x64 monochrome SSD1306 panel.
//
// A frame is 1024 bytes: 8 pages of 128 columns. Each byte covers 8 vertical
// pixels of one column, the least significant bit being the top pixel of the
// page. This is the layout of image1bit.VerticalLSB.Pix.
//
// Memory layout of the first column of page 0:
//
//	Rows:  0 1 2 3 4 5 6 7
//	Bits:  1 0 0 0 0 0 0 1
//	Byte:  0x81
//
// Example usage:
//
//	// Render two lines of text
//	px := frame.Text("hello", "world")
//
//	// Convert any image, thresholded to on/off
//	px = frame.FromImage(img)
package frame
