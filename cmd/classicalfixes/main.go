// Command classicalfixes applies the classical metadata fixes to music
// files and maintains the lookup table of composers, conductors and
// orchestras.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
