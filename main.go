package main

import (
	"os"

	"github.com/yrtrans/transhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
