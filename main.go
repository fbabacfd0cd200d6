package main

import (
	"os"

	"github.com/cloudeye/orient/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
