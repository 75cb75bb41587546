package main

import (
	"fmt"
	"os"

	"github.com/rony4d/d2items/cmd/d2items/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
