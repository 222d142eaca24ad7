package main

import (
	"os"

	"github.com/ziadkadry99/toldyou-button/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
