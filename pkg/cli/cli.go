// Package cli holds the command-line plumbing shared by the chopper
// executables.
package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/host"
	"github.com/mnafees/chopper/v2/pkg/statsview"
	"github.com/mnafees/chopper/v2/pkg/watch"
	"github.com/mnafees/chopper/v2/pkg/wavwriter"
)

// ParseFlags parses the command line into a Config and the ROM path. It
// exits on invalid usage.
func ParseFlags(name string) (host.Config, string) {
	log.SetPrefix(name + ": ")
	log.SetFlags(0)

	cfg := host.DefaultConfig()
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <CHIP-8 program>\n", name)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(fs.Output(), err)
		os.Exit(2)
	}
	return cfg, fs.Arg(0)
}

// Load creates a VM configured by cfg with romFile loaded.
func Load(cfg host.Config, romFile string) (*internal.C8VM, error) {
	rom, err := host.ReadROM(romFile)
	if err != nil {
		return nil, err
	}
	vm := internal.NewC8VM(cfg.VMOptions()...)
	if err := vm.Load(rom); err != nil {
		return nil, err
	}
	return vm, nil
}

// Run runs vm on fe until the user quits or ctx is done. romFile is
// watched for changes when cfg.Watch is set.
func Run(ctx context.Context, cfg host.Config, romFile string, vm *internal.C8VM, fe host.Frontend, sinks ...host.AudioSink) (rerr error) {
	r := host.NewRunner(vm, fe, cfg)
	for _, s := range sinks {
		r.AddAudioSink(s)
	}

	if cfg.WAVFile != "" {
		aw, err := wavwriter.New(cfg.WAVFile)
		if err != nil {
			return err
		}
		r.AddAudioSink(aw)
		defer func() {
			if err := aw.EndMixing(); err != nil && rerr == nil {
				rerr = err
			}
		}()
	}

	if cfg.StatsView {
		statsview.Launch(log.Writer())
	}

	if cfg.Watch {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		reload := make(chan []byte)
		r.SetReload(reload)
		go func() {
			if err := watch.ROM(ctx, romFile, reload); err != nil {
				log.Printf("watch: %v", err)
			}
		}()
	}
	return r.Run(ctx)
}
