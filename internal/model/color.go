package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque RGB triple as stored in the config file.
type Color struct {
	R, G, B uint8
}

// ParseColor decodes a "R,G,B" string with decimal channels in 0-255.
// Channels must be written canonically: no sign, no leading zeros.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: color %q must have three channels", ErrInvalidValue, s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil || strconv.FormatUint(v, 10) != p {
			return Color{}, fmt.Errorf("%w: color %q channel %d", ErrInvalidValue, s, i+1)
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ColorFrom converts any color to its RGB channels. Alpha is dropped;
// premultiplied colors are un-premultiplied first.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// String renders the color as "R,G,B".
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// NRGBA returns the color as a fully opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}
