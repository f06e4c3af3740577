package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/mnafees/chopper/v2/pkg/cli"
	"github.com/mnafees/chopper/v2/pkg/tui"
)

func main() {
	cfg, romFile := cli.ParseFlags("chopper-tui")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	vm, err := cli.Load(cfg, romFile)
	if err != nil {
		log.Fatal(err)
	}

	term := tui.NewTerminal(nil)
	log.SetOutput(term.LogWriter())

	errc := make(chan error, 1)
	go func() {
		errc <- cli.Run(ctx, cfg, romFile, vm, term)
		term.Stop()
	}()
	uiErr := term.Run()
	log.SetOutput(os.Stderr)
	cancel()

	if err := <-errc; err != nil {
		log.Fatal(err)
	}
	if uiErr != nil {
		log.Fatal(uiErr)
	}
}
