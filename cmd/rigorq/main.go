package main

import (
	"os"

	"github.com/RafaelJohn9/rigorq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(2)
	}
}
