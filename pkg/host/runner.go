package host

import (
	"context"
	"log"
	"time"

	"github.com/mnafees/chopper/v2/internal"
)

// Runner executes a VM against a frontend in real time.
type Runner struct {
	vm       *internal.C8VM
	frontend Frontend
	sinks    []AudioSink
	clock    Clock
	reload   <-chan []byte
	cfg      Config

	ips    int
	debug  bool
	paused bool
	dirty  bool // force a full redraw on the next frame

	steps  cadence
	timers cadence
	frames cadence

	statsStart  time.Time
	statsCycles uint64
	cps         uint64
}

// NewRunner returns a Runner for vm. The ROM must already be loaded.
func NewRunner(vm *internal.C8VM, fe Frontend, cfg Config) *Runner {
	return &Runner{
		vm:       vm,
		frontend: fe,
		clock:    systemClock{},
		cfg:      cfg,
		ips:      cfg.IPS,
		debug:    cfg.Debug,
		dirty:    true,
	}
}

// AddAudioSink registers s to receive the tone on every timer tick.
func (r *Runner) AddAudioSink(s AudioSink) { r.sinks = append(r.sinks, s) }

// SetClock replaces the wall clock.
func (r *Runner) SetClock(c Clock) { r.clock = c }

// SetReload sets a channel of replacement ROMs. Each received ROM is
// loaded between cycles.
func (r *Runner) SetReload(ch <-chan []byte) { r.reload = ch }

// IPS returns the current target instructions per second.
func (r *Runner) IPS() int { return r.ips }

// Run drives the VM until the frontend asks to quit, ctx is cancelled, or
// the VM halts with an error. A halted VM does not stop a Runner in watch
// mode; it waits for the next reload instead.
func (r *Runner) Run(ctx context.Context) error {
	now := r.clock.Now()
	r.steps.reset(now, r.ips)
	r.timers.reset(now, TimerHz)
	r.frames.reset(now, r.cfg.FrameRate)
	r.statsStart = now
	r.statsCycles = r.vm.Cycles()

	for {
		select {
		case <-ctx.Done():
			return nil
		case rom := <-r.reload:
			r.load(rom)
		default:
		}

		now = r.clock.Now()
		if err := r.cycle(now); err != nil {
			return err
		}
		quit, err := r.frame(now)
		if err != nil || quit {
			return err
		}
		r.updateStats(now)

		r.clock.Sleep(r.idle())
	}
}

// cycle executes the instructions and timer ticks due at now.
func (r *Runner) cycle(now time.Time) error {
	steps, ticks := r.steps.due(now), r.timers.due(now)
	if r.paused {
		return nil
	}
	for i := 0; i < steps && r.vm.State() != internal.Halted; i++ {
		if err := r.vm.Step(); err != nil {
			if herr := r.halted(err); herr != nil {
				return herr
			}
		}
	}
	for i := 0; i < ticks; i++ {
		// The tone covers the tick the sound timer was nonzero for.
		on := r.vm.SoundActive()
		r.vm.TickTimers()
		for _, s := range r.sinks {
			s.SetTone(on)
		}
	}
	return nil
}

func (r *Runner) halted(err error) error {
	log.Print(err)
	if r.cfg.DumpFile != "" {
		if derr := Dump(r.cfg.DumpFile, r.vm); derr != nil {
			log.Print(derr)
		} else {
			log.Printf("wrote state to %s", r.cfg.DumpFile)
		}
	}
	if r.cfg.Watch {
		log.Print("waiting for the ROM to change")
		return nil
	}
	return err
}

// frame polls input and renders if a frame is due.
func (r *Runner) frame(now time.Time) (quit bool, err error) {
	if r.frames.due(now) == 0 {
		return false, nil
	}
	a, err := r.frontend.Poll(r.vm.Keypad())
	if err != nil {
		return false, err
	}
	if a.Quit {
		return true, nil
	}
	r.apply(a, now)

	d := r.vm.Display()
	f := Frame{Display: d, Dirty: r.dirty || d.IsDrawFlagSet()}
	if r.debug {
		f.Debug = r.debugInfo()
	}
	if err := r.frontend.Render(f); err != nil {
		return false, err
	}
	d.UnsetDrawFlag()
	r.dirty = false
	return false, nil
}

func (r *Runner) apply(a Actions, now time.Time) {
	ips := r.ips
	switch {
	case a.SpeedUp:
		ips += SpeedStep
	case a.SpeedDown:
		ips -= SpeedStep
		if ips < MinIPS {
			ips = MinIPS
		}
	case a.SpeedReset:
		ips = r.cfg.IPS
	}
	if ips != r.ips {
		r.ips = ips
		r.steps.reset(now, ips)
		log.Printf("speed %d ips", ips)
	}
	if a.ToggleDebug {
		r.debug = !r.debug
		r.dirty = true
	}
	if a.TogglePause {
		r.paused = !r.paused
		r.dirty = true
		if r.paused {
			r.silence()
		}
	}
	if a.Reset {
		r.vm.Reset()
		r.dirty = true
		r.silence()
	}
}

func (r *Runner) load(rom []byte) {
	if err := r.vm.Load(rom); err != nil {
		log.Printf("reload: %v", err)
		return
	}
	log.Printf("reloaded program (%d bytes)", len(rom))
	r.dirty = true
	r.silence()
}

func (r *Runner) silence() {
	for _, s := range r.sinks {
		s.SetTone(false)
	}
}

func (r *Runner) updateStats(now time.Time) {
	if now.Sub(r.statsStart) < time.Second {
		return
	}
	cycles := r.vm.Cycles()
	if cycles >= r.statsCycles {
		r.cps = cycles - r.statsCycles
	}
	r.statsCycles = cycles
	r.statsStart = now
}

func (r *Runner) debugInfo() *DebugInfo {
	return &DebugInfo{
		CyclesPerSecond: r.cps,
		TargetIPS:       r.ips,
		Paused:          r.paused,
		Err:             r.vm.Err(),
		Snapshot:        r.vm.Snapshot(),
	}
}

// idle returns how long to sleep before the next step or frame is due.
func (r *Runner) idle() time.Duration {
	d := r.steps.interval()
	if f := r.frames.interval(); f < d {
		d = f
	}
	return d
}
