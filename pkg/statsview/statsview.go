// Package statsview serves live runtime statistics (heap, goroutines, GC)
// of the emulator over HTTP.
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address the statistics server listens on.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Launch starts the statistics server in a new goroutine and reports its
// location to output.
func Launch(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", Address, url)
}
