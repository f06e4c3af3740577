// Package watch reloads a ROM file when it changes on disk.
package watch

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/mnafees/chopper/v2/pkg/host"
)

// Debounce is how long the file must be quiet before it is reloaded.
const Debounce = 100 * time.Millisecond

// ROM watches filename and sends its new contents on reload each time it
// is written. Files that cannot be read are logged and skipped. ROM
// returns when ctx is done.
func ROM(ctx context.Context, filename string, reload chan<- []byte) error {
	filename = filepath.Clean(filename)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(filename)); err != nil {
		return err
	}

	var run <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-run:
			run = nil
			rom, err := host.ReadROM(filename)
			if err != nil {
				log.Printf("watch: %v", err)
				break
			}
			log.Printf("watch: %s changed", filepath.Base(filename))
			select {
			case reload <- rom:
			case <-ctx.Done():
				return nil
			}
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == filename && !ev.IsAttrib() && !ev.IsDelete() {
				run = time.After(Debounce)
			}
		case err := <-watcher.Error:
			log.Printf("watch: %v", err)
		}
	}
}
