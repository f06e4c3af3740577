package host

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/mnafees/chopper/v2/internal"
)

// ReadROM reads a ROM image from disk. ROMs are raw instruction bytes
// without a header.
func ReadROM(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	if len(data) > internal.MaxProgramSize {
		return nil, fmt.Errorf("loading program %s: %w: %d bytes", filename, internal.ErrRomTooLarge, len(data))
	}
	return data, nil
}

// Dump writes the VM registers as a graphviz graph.
func Dump(filename string, vm *internal.C8VM) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("dump: %w", err)
		}
	}()
	snap := vm.Snapshot()
	memviz.Map(f, &snap)
	return nil
}
