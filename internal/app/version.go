package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version string. It is overridden at build
// time via the linker:
//
//	go build -ldflags="-X github.com/adya/memwatch/internal/app.Version=v1.0.0"
var Version = "dev"

// HasVersionFlag reports whether args requests the version banner.
// Lowercase -v belongs to -verbose, so only -V and the long spellings
// count.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "memwatch %s (%s %s/%s)\n",
		Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
