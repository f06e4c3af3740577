package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/host"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen, *time.Time) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	term := NewTerminal(s)
	now := time.Unix(0, 0)
	term.now = func() time.Time { return now }
	return term, s, &now
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestDrawDisplay(t *testing.T) {
	term, s, _ := newTestTerminal(t)

	var d internal.Display
	// Pixels (0,0) and (1,1): cell (0,0) is top-only, cell (1,0) is
	// bottom-only. (2,0)-(2,1) fills cell (2,0).
	d.DrawSprite(0, 0, []byte{0xA0, 0x60})
	if err := term.Render(host.Frame{Display: &d, Dirty: true}); err != nil {
		t.Fatal(err)
	}
	term.display.SetRect(0, 0, internal.ScreenWidth, internal.ScreenHeight/2)
	term.display.Draw(s)

	fg := palette[0]
	cases := []struct {
		x      int
		fg, bg tcell.Color
	}{
		{0, fg, background},
		{1, background, fg},
		{2, fg, fg},
		{3, background, background},
	}
	for _, c := range cases {
		r, _, style, _ := s.GetContent(c.x, 0)
		if r != upperHalfBlock {
			t.Errorf("cell %d rune == %q, want %q", c.x, r, upperHalfBlock)
		}
		gotFg, gotBg, _ := style.Decompose()
		if gotFg != c.fg || gotBg != c.bg {
			t.Errorf("cell %d colors == %v/%v, want %v/%v", c.x, gotFg, gotBg, c.fg, c.bg)
		}
	}
}

func TestKeyHold(t *testing.T) {
	term, _, now := newTestTerminal(t)
	var k internal.Keypad

	term.handleKey(key('W'))
	if _, err := term.Poll(&k); err != nil {
		t.Fatal(err)
	}
	if !k.IsPressed(0x5) {
		t.Error("key 5 not pressed after W")
	}

	*now = now.Add(HoldTime / 2)
	term.handleKey(key('w'))
	*now = now.Add(HoldTime / 2)
	term.Poll(&k)
	if !k.IsPressed(0x5) {
		t.Error("key 5 released while repeating")
	}

	*now = now.Add(HoldTime)
	term.Poll(&k)
	if k.IsPressed(0x5) {
		t.Error("key 5 still pressed after hold time")
	}
}

func TestActions(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want host.Actions
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), host.Actions{Quit: true}},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), host.Actions{Quit: true}},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), host.Actions{ToggleDebug: true}},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), host.Actions{Reset: true}},
		{key(' '), host.Actions{TogglePause: true}},
		{key(','), host.Actions{SpeedDown: true}},
		{key('.'), host.Actions{SpeedReset: true}},
		{key('/'), host.Actions{SpeedUp: true}},
		{key('q'), host.Actions{}},
	}
	for _, c := range cases {
		term, _, _ := newTestTerminal(t)
		term.handleKey(c.ev)
		var k internal.Keypad
		got, err := term.Poll(&k)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("%s: actions == %+v, want %+v", c.ev.Name(), got, c.want)
		}
		if got, _ := term.Poll(&k); got != (host.Actions{}) {
			t.Errorf("%s: actions not cleared: %+v", c.ev.Name(), got)
		}
	}
}

func TestPalette(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	term.handleKey(key('['))
	if got, want := term.color, len(palette)-1; got != want {
		t.Errorf("color == %d, want %d", got, want)
	}
	term.handleKey(key(']'))
	term.handleKey(key(']'))
	if got := term.color; got != 1 {
		t.Errorf("color == %d, want 1", got)
	}
}

func TestRenderDebug(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	var d internal.Display
	info := &host.DebugInfo{TargetIPS: 700}
	info.PC = 0x2a4
	info.Next = "CLS"
	term.Render(host.Frame{Display: &d, Debug: info})
	term.refresh()
	text := term.regs.GetText(true)
	for _, want := range []string{"700 ips", "PC 02a4", "next: CLS"} {
		if !strings.Contains(text, want) {
			t.Errorf("register panel %q does not contain %q", text, want)
		}
	}
	term.Render(host.Frame{Display: &d})
	term.refresh()
	if text := term.regs.GetText(true); !strings.Contains(text, "F1") {
		t.Errorf("register panel == %q, want hint", text)
	}
}

func TestKeymapCoversKeypad(t *testing.T) {
	seen := make(map[uint8]bool)
	for _, k := range keymap {
		seen[k] = true
	}
	if len(seen) != internal.KeyCount || len(keymap) != internal.KeyCount {
		t.Errorf("keymap has %d keys for %d values, want %d", len(keymap), len(seen), internal.KeyCount)
	}
}

func TestStopBeforeRun(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	term.Stop()
	done := make(chan error, 1)
	go func() { done <- term.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() == %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after an early Stop")
	}
}
