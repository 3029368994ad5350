package compile

import (
	"flag"
	"fmt"

	"github.com/chtyim/fastcode/typetoken"
)

var DebugCompile = flag.Bool("debug-compile", false, "debug manifest loading")

func CompilePrintf(format string, args ...interface{}) {
	if *typetoken.DebugAll || *DebugCompile {
		_, err := fmt.Fprintf(typetoken.DebugWriter, format, args...)
		if err != nil {
			panic(err)
		}
	}
}
