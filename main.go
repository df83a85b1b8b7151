package main

import (
	"os"

	"github.com/slotmill/slotmill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
