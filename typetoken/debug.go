package typetoken

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

var (
	DebugAll      = flag.Bool("debug", false, "debug all")
	DebugBindings = flag.Bool("debug-bindings", false, "debug binding collection")
	DebugCapture  = flag.Bool("debug-capture", false, "debug capture chains")

	DebugWriter io.Writer = os.Stderr
)

func BindingsPrintf(format string, args ...interface{}) {
	if *DebugAll || *DebugBindings {
		debugPrintf(format, args...)
	}
}

func CapturePrintf(format string, args ...interface{}) {
	if *DebugAll || *DebugCapture {
		debugPrintf(format, args...)
	}
}

// DebugDump writes a spew dump of values when any debug flag is set.
func DebugDump(values ...interface{}) {
	if *DebugAll || *DebugBindings || *DebugCapture {
		spew.Fdump(DebugWriter, values...)
	}
}

func debugPrintf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(DebugWriter, format, args...)
	if err != nil {
		panic(err)
	}
}
