// Package display renders the monitor state on a small monochrome panel.
package display

import (
	"bufio"
	"image/color"
	"io"

	"tinygo.org/x/drivers"
)

// Panel geometry of the SSD1306 module the UI is laid out for.
const (
	Width  = 128
	Height = 64
)

var (
	On  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Off = color.RGBA{A: 0xff}
)

var _ drivers.Displayer = (*Framebuffer)(nil)

// Framebuffer is a 1-bit pixel buffer in SSD1306 page order: each byte holds
// eight vertical pixels, least significant bit on top.
// Display() writes the frame as text to the configured writer.
type Framebuffer struct {
	width, height int16
	buf           []byte
	out           io.Writer
}

// NewFramebuffer creates a blank width x height buffer. out may be nil, in
// which case Display is a no-op.
func NewFramebuffer(width, height int16, out io.Writer) *Framebuffer {
	pages := (int(height) + 7) / 8
	return &Framebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, int(width)*pages),
		out:    out,
	}
}

func (f *Framebuffer) Size() (x, y int16) {
	return f.width, f.height
}

// SetPixel lights the pixel for any non-black color.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	off := int(x) + (int(y)/8)*int(f.width)
	bit := byte(1) << (uint(y) % 8)
	if c.R|c.G|c.B != 0 {
		f.buf[off] |= bit
	} else {
		f.buf[off] &^= bit
	}
}

// Pixel reports whether the pixel is lit. Out of range reads as dark.
func (f *Framebuffer) Pixel(x, y int16) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	off := int(x) + (int(y)/8)*int(f.width)
	return f.buf[off]&(byte(1)<<(uint(y)%8)) != 0
}

// Clear darkens the whole buffer.
func (f *Framebuffer) Clear() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}

// FillRectangle sets a clipped rectangle to c.
func (f *Framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			f.SetPixel(px, py, c)
		}
	}
	return nil
}

// Display writes the frame to the output, preceded by a cursor-home escape so
// a terminal redraws in place.
func (f *Framebuffer) Display() error {
	if f.out == nil {
		return nil
	}
	if _, err := io.WriteString(f.out, "\x1b[H"); err != nil {
		return err
	}
	_, err := f.WriteTo(f.out)
	return err
}

// WriteTo renders two pixel rows per text line using half-block characters.
func (f *Framebuffer) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for y := int16(0); y < f.height; y += 2 {
		for x := int16(0); x < f.width; x++ {
			top := f.Pixel(x, y)
			bottom := f.Pixel(x, y+1)
			var s string
			switch {
			case top && bottom:
				s = "█"
			case top:
				s = "▀"
			case bottom:
				s = "▄"
			default:
				s = " "
			}
			m, _ := bw.WriteString(s)
			n += int64(m)
		}
		bw.WriteByte('\n')
		n++
	}
	return n, bw.Flush()
}
