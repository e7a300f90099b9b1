package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/hupe1980/gxhash/hashlib"
	"github.com/hupe1980/gxhash/internal/gxhash"
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "gxsum %s %s %s/%s\n", version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "algorithms: %s\n", strings.Join(hashlib.AlgorithmsAvailable(), " "))
	fmt.Fprintf(w, "hardware aes: %t\n", gxhash.HasHardwareAES())
}
