// Package tui is a terminal frontend. Each character cell shows two CHIP-8
// pixels using the upper half block, so the display needs 64×16 cells.
package tui

import (
	"io"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/host"
)

// HoldTime is how long a key counts as pressed after the terminal reports
// it. Terminals send no key release events, so keys are released when
// they stop repeating.
const HoldTime = 200 * time.Millisecond

const upperHalfBlock = '▀'

var (
	background = tcell.ColorBlack
	palette    = []tcell.Color{
		tcell.ColorWhite,
		tcell.ColorRed,
		tcell.ColorBlue,
		tcell.ColorGreen,
		tcell.ColorYellow,
		tcell.ColorOrange,
		tcell.ColorPurple,
		tcell.ColorFuchsia,
	}
)

// Terminal is the terminal frontend.
type Terminal struct {
	app     *tview.Application
	display *tview.Box
	regs    *tview.TextView
	log     *tview.TextView
	cols    *tview.Flex
	rows    *tview.Flex

	now   func() time.Time
	dirty chan struct{}
	done  chan struct{}

	mu      sync.Mutex
	pixels  [internal.ScreenWidth * internal.ScreenHeight]bool
	regText string
	held    [internal.KeyCount]time.Time // release deadline of each key
	actions host.Actions
	color   int
}

// NewTerminal builds the terminal UI. A nil screen uses the real terminal.
func NewTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{
		app:     tview.NewApplication(),
		display: tview.NewBox(),
		regs: tview.NewTextView().
			SetWrap(false),
		log: tview.NewTextView().
			SetMaxLines(1000),
		cols: tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		now:   time.Now,
		dirty: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	if screen != nil {
		t.app.SetScreen(screen)
	}
	t.display.SetDrawFunc(t.drawDisplay)
	t.regs.SetBackgroundColor(tcell.ColorDarkBlue)
	t.log.SetChangedFunc(func() { t.app.Draw() })
	t.cols.
		AddItem(t.display, internal.ScreenWidth, 0, false).
		AddItem(t.regs, 0, 1, false)
	t.rows.
		AddItem(t.cols, internal.ScreenHeight/2, 0, false).
		AddItem(t.log, 0, 1, false)
	t.app.SetRoot(t.rows, true)
	t.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		t.handleKey(ev)
		return nil
	})
	return t
}

// LogWriter returns the log panel, for use with log.SetOutput.
func (t *Terminal) LogWriter() io.Writer { return t.log }

// Run runs the terminal UI until Stop is called.
func (t *Terminal) Run() error {
	go func() {
		for {
			select {
			case <-t.dirty:
				t.app.QueueUpdateDraw(t.refresh)
			case <-t.done:
				return
			}
		}
	}()
	defer close(t.done)
	return t.app.Run()
}

// Stop ends Run. It may be called before Run has started, in which case
// Run returns as soon as the UI is up.
func (t *Terminal) Stop() {
	t.app.QueueUpdate(func() { t.app.Stop() })
}

// Render implements host.Frontend.
func (t *Terminal) Render(f host.Frame) error {
	t.mu.Lock()
	changed := f.Dirty
	if f.Dirty {
		for y := 0; y < internal.ScreenHeight; y++ {
			for x := 0; x < internal.ScreenWidth; x++ {
				t.pixels[y*internal.ScreenWidth+x] = f.Display.Pixel(x, y)
			}
		}
	}
	regText := "F1: registers"
	if f.Debug != nil {
		regText = f.Debug.String()
	}
	if regText != t.regText {
		t.regText = regText
		changed = true
	}
	t.mu.Unlock()

	if changed {
		t.redraw()
	}
	return nil
}

// refresh runs on the UI goroutine.
func (t *Terminal) refresh() {
	t.mu.Lock()
	text := t.regText
	t.mu.Unlock()
	t.regs.SetText(text)
}

func (t *Terminal) drawDisplay(s tcell.Screen, x, y, width, height int) (int, int, int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fg := palette[t.color]
	for row := 0; row < internal.ScreenHeight/2 && row < height; row++ {
		for col := 0; col < internal.ScreenWidth && col < width; col++ {
			top := t.pixels[2*row*internal.ScreenWidth+col]
			bottom := t.pixels[(2*row+1)*internal.ScreenWidth+col]
			style := tcell.StyleDefault.
				Foreground(pick(top, fg)).
				Background(pick(bottom, fg))
			s.SetContent(x+col, y+row, upperHalfBlock, nil, style)
		}
	}
	return x, y, width, height
}

func pick(on bool, fg tcell.Color) tcell.Color {
	if on {
		return fg
	}
	return background
}

// Poll implements host.Frontend.
func (t *Terminal) Poll(k *internal.Keypad) (host.Actions, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for i, until := range t.held {
		k.SetKey(uint8(i), now.Before(until))
	}
	a := t.actions
	t.actions = host.Actions{}
	return a, nil
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.actions.Quit = true
	case tcell.KeyF1:
		t.actions.ToggleDebug = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.actions.Reset = true
	case tcell.KeyRune:
		r := unicode.ToLower(ev.Rune())
		if key, ok := keymap[r]; ok {
			t.held[key] = t.now().Add(HoldTime)
			return
		}
		switch r {
		case ' ':
			t.actions.TogglePause = true
		case ',':
			t.actions.SpeedDown = true
		case '.':
			t.actions.SpeedReset = true
		case '/':
			t.actions.SpeedUp = true
		case '[':
			t.color = (t.color + len(palette) - 1) % len(palette)
			t.redraw()
		case ']':
			t.color = (t.color + 1) % len(palette)
			t.redraw()
		}
	}
}

// redraw asks for a repaint without a display change.
func (t *Terminal) redraw() {
	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

// Same layout as the SDL frontend:
//
//	1 2 3 4    1 2 3 C
//	q w e r    4 5 6 D
//	a s d f -> 7 8 9 E
//	z x c v    A 0 B F
var keymap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}
