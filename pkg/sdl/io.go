package sdl

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/host"
)

const screenColor = 0x1A237E

// Sprite colors selectable with [ and ].
var palette = []uint32{
	0x9FA8DA, // indigo
	0xE6194B, // red
	0x4363D8, // blue
	0x3CB44B, // green
	0xFFE119, // yellow
	0xF58231, // orange
	0x911EB4, // purple
	0xF032E6, // magenta
	0xFFFFFF, // white
}

// IO is the SDL frontend: a window, the keyboard and an audio device.
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	title   string
	scale   int32
	color   int // index into palette
	debug   bool
	repaint bool

	*Audio
}

// NewIO initialises SDL and opens a window scale times the size of the
// CHIP-8 display. Destroy must be called when done.
func NewIO(title string, scale int) (*IO, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initialising SDL: %w", err)
	}
	io := &IO{title: title, scale: int32(scale)}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.scale, internal.ScreenHeight*io.scale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		io.Destroy()
		return nil, fmt.Errorf("getting window surface: %w", err)
	}
	io.surface.FillRect(nil, io.mapColor(screenColor))

	io.Audio, err = NewAudio()
	if err != nil {
		io.Destroy()
		return nil, fmt.Errorf("opening audio: %w", err)
	}
	return io, nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.Audio != nil {
		if err := io.Audio.Close(); err != nil {
			log.Print(err)
		}
	}
	io.window.Destroy()
	sdl.Quit()
}

// Render implements host.Frontend.
func (io *IO) Render(f host.Frame) error {
	if f.Debug != nil {
		io.window.SetTitle(fmt.Sprintf("%s | %d ips | PC %.4x I %.4x | %s",
			io.title, f.Debug.CyclesPerSecond, f.Debug.PC, f.Debug.I, f.Debug.Next))
	} else if io.debug {
		io.window.SetTitle(io.title)
	}
	io.debug = f.Debug != nil
	if !f.Dirty && !io.repaint {
		return nil
	}
	io.repaint = false
	io.draw(f.Display)
	return io.window.UpdateSurface()
}

// Draws the current sprite configuration on screen
func (io *IO) draw(d *internal.Display) {
	io.surface.FillRect(nil, io.mapColor(screenColor))
	fg := io.mapColor(palette[io.color])
	for w := int32(0); w < internal.ScreenWidth; w++ {
		for h := int32(0); h < internal.ScreenHeight; h++ {
			if d.Pixel(int(w), int(h)) {
				rect := &sdl.Rect{X: w * io.scale, Y: h * io.scale, W: io.scale, H: io.scale}
				io.surface.FillRect(rect, fg)
			}
		}
	}
}

func (io *IO) mapColor(rgb uint32) uint32 {
	return sdl.MapRGB(io.surface.Format, uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
}

// Poll implements host.Frontend. It drains the SDL event queue.
func (io *IO) Poll(k *internal.Keypad) (host.Actions, error) {
	var a host.Actions
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			code := t.Keysym.Scancode
			pressed := t.GetType() == sdl.KEYDOWN
			if key := keymap(code); key != -1 {
				k.SetKey(uint8(key), pressed)
				break
			}
			if !pressed || t.Repeat != 0 {
				break
			}
			io.hotkey(code, &a)
		case *sdl.QuitEvent:
			a.Quit = true
		}
	}
	return a, nil
}

// hotkey applies a non-keypad key press. Palette changes stay local to the
// frontend.
func (io *IO) hotkey(code sdl.Scancode, a *host.Actions) {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		a.Quit = true
	case sdl.SCANCODE_F1:
		a.ToggleDebug = true
	case sdl.SCANCODE_COMMA:
		a.SpeedDown = true
	case sdl.SCANCODE_PERIOD:
		a.SpeedReset = true
	case sdl.SCANCODE_SLASH:
		a.SpeedUp = true
	case sdl.SCANCODE_SPACE:
		a.TogglePause = true
	case sdl.SCANCODE_BACKSPACE:
		a.Reset = true
	case sdl.SCANCODE_LEFTBRACKET:
		io.color = cycle(io.color, -1, len(palette))
		io.repaint = true
	case sdl.SCANCODE_RIGHTBRACKET:
		io.color = cycle(io.color, 1, len(palette))
		io.repaint = true
	}
}

func cycle(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
