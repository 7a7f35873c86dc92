package main

import (
	"fmt"
	"os"

	"github.com/nojima/reqbuild"
)

func main() {
	if err := reqbuild.Main(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
