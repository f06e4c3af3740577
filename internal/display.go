package internal

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is the monochrome frame buffer. Pixels are stored row-major.
type Display struct {
	pixels   [ScreenWidth * ScreenHeight]bool
	drawFlag bool // set whenever the buffer changes
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.pixels = [ScreenWidth * ScreenHeight]bool{}
	d.drawFlag = true
}

// DrawSprite XORs sprite onto the buffer with its top-left corner at (x, y).
// Each byte of sprite is one 8 pixel row, most significant bit leftmost.
// Coordinates wrap around both edges. It reports whether any lit pixel was
// turned off.
func (d *Display) DrawSprite(x, y int, sprite []byte) (collision bool) {
	x, y = wrap(x, ScreenWidth), wrap(y, ScreenHeight)
	for row, bits := range sprite {
		py := (y + row) % ScreenHeight
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := &d.pixels[py*ScreenWidth+(x+col)%ScreenWidth]
			if *px {
				collision = true
			}
			*px = !*px
		}
	}
	if len(sprite) > 0 {
		d.drawFlag = true
	}
	return collision
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap the
// same way they do for DrawSprite.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, ScreenHeight)*ScreenWidth+wrap(x, ScreenWidth)]
}

// IsDrawFlagSet returns whether the buffer changed since UnsetDrawFlag.
func (d *Display) IsDrawFlagSet() bool {
	return d.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (d *Display) UnsetDrawFlag() {
	d.drawFlag = false
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
