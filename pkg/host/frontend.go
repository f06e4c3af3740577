// Package host drives a CHIP-8 VM on behalf of a frontend. It interleaves
// instruction steps, 60Hz timer ticks and frame updates, each at its own
// rate.
package host

import (
	"fmt"
	"strings"

	"github.com/mnafees/chopper/v2/internal"
)

// Frontend renders frames and reports input. Both methods are called from
// the goroutine running Runner.Run, once per frame.
type Frontend interface {
	// Render presents the display. The Frame is only valid for the
	// duration of the call.
	Render(f Frame) error

	// Poll applies pending key transitions to k and returns the user
	// actions requested since the previous call.
	Poll(k *internal.Keypad) (Actions, error)
}

// AudioSink plays the tone. SetTone is called on every timer tick with
// whether the sound timer is running.
type AudioSink interface {
	SetTone(on bool)
}

// Frame is what a frontend draws.
type Frame struct {
	Display *internal.Display
	Dirty   bool       // the display changed since the previous frame
	Debug   *DebugInfo // nil unless the debug overlay is enabled
}

// Actions are requests from the user, collected by a frontend.
type Actions struct {
	Quit        bool
	SpeedUp     bool
	SpeedDown   bool
	SpeedReset  bool
	ToggleDebug bool
	TogglePause bool
	Reset       bool
}

// DebugInfo describes the VM and runner state for overlays.
type DebugInfo struct {
	CyclesPerSecond uint64
	TargetIPS       int
	Paused          bool
	Err             error
	internal.Snapshot
}

func (d *DebugInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d ips  total %d", d.CyclesPerSecond, d.TargetIPS, d.Cycles)
	if d.Paused {
		b.WriteString("  [paused]")
	}
	fmt.Fprintf(&b, "\nPC %.4x  I %.4x  SP %d  DT %.2x  ST %.2x  %s\n",
		d.PC, d.I, d.SP, d.DelayTimer, d.SoundTimer, d.State)
	for i, v := range d.V {
		fmt.Fprintf(&b, "V%X %.2x", i, v)
		if i%4 == 3 {
			b.WriteByte('\n')
		} else {
			b.WriteString("  ")
		}
	}
	fmt.Fprintf(&b, "next: %s", d.Next)
	if d.Err != nil {
		fmt.Fprintf(&b, "\nerror: %v", d.Err)
	}
	return b.String()
}
