package main

import (
	"os"

	"github.com/autoagro/keyseal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
