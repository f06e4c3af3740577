package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/mnafees/chopper/v2/pkg/cli"
	"github.com/mnafees/chopper/v2/pkg/sdl"
)

func init() {
	// SDL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg, romFile := cli.ParseFlags("chopper")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	vm, err := cli.Load(cfg, romFile)
	if err != nil {
		log.Fatal(err)
	}
	io, err := sdl.NewIO("Chopper | CHIP-8 Emulator", cfg.Scale)
	if err != nil {
		log.Fatal(err)
	}
	err = cli.Run(ctx, cfg, romFile, vm, io, io)
	io.Destroy()
	if err != nil {
		log.Fatal(err)
	}
}
