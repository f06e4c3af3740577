package host

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/mnafees/chopper/v2/internal"
)

// Speed limits and the step applied by the speed actions.
const (
	MinIPS    = 100
	SpeedStep = 100

	// TimerHz is the fixed rate of the delay and sound timers.
	TimerHz = 60
)

// Config holds the runtime options shared by all frontends.
type Config struct {
	IPS       int // instructions per second
	FrameRate int // frames per second
	Scale     int // window pixels per CHIP-8 pixel
	Quirks    internal.Quirks
	Lenient   bool // skip unknown opcodes instead of halting
	Seed      int64

	Debug     bool   // show the debug overlay at start
	WAVFile   string // record the tone to this file
	Watch     bool   // reload the ROM when it changes
	StatsView bool   // serve runtime statistics
	DumpFile  string // write a graph of the VM state here when it halts
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		IPS:       700,
		FrameRate: 60,
		Scale:     20,
		Seed:      time.Now().UnixNano(),
	}
}

// RegisterFlags binds c to command-line flags in fs. Current values of c
// become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.IPS, "ips", c.IPS, "instructions executed per second")
	fs.IntVar(&c.FrameRate, "fps", c.FrameRate, "display refresh rate")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window `pixels` per CHIP-8 pixel")
	fs.BoolVar(&c.Quirks.ShiftVY, "shift-vy", c.Quirks.ShiftVY, "8xy6/8xyE shift Vy into Vx")
	fs.BoolVar(&c.Quirks.IncrementIndex, "increment-index", c.Quirks.IncrementIndex, "Fx55/Fx65 advance I past the registers")
	fs.BoolVar(&c.Quirks.ResetVF, "reset-vf", c.Quirks.ResetVF, "8xy1/8xy2/8xy3 clear VF")
	fs.BoolVar(&c.Lenient, "lenient", c.Lenient, "skip unknown opcodes instead of halting")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random number generator seed")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show registers and speed")
	fs.StringVar(&c.WAVFile, "wav", c.WAVFile, "record audio to `file`")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload the ROM when the file changes")
	fs.BoolVar(&c.StatsView, "statsview", c.StatsView, "serve runtime statistics over HTTP")
	fs.StringVar(&c.DumpFile, "dump", c.DumpFile, "write the VM state as a graphviz `file` when it halts")
}

// Validate reports options that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.IPS < MinIPS {
		errs = append(errs, fmt.Errorf("ips must be at least %d, got %d", MinIPS, c.IPS))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FrameRate))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %d", c.Scale))
	}
	return errors.Join(errs...)
}

// VMOptions returns the options for internal.NewC8VM.
func (c Config) VMOptions() []internal.Option {
	return []internal.Option{
		internal.WithQuirks(c.Quirks),
		internal.WithLenient(c.Lenient),
		internal.WithSeed(c.Seed),
	}
}
