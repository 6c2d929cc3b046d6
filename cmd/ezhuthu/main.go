// Command ezhuthu is a terminal text viewer.
package main

import (
	"fmt"
	"os"
)

// Version is injected via ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd(Version).Execute(); err != nil {
		die(err)
	}
}

func die(err error) {
	fmt.Fprintln(os.Stderr, "ezhuthu:", err)
	os.Exit(1)
}
