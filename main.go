package main

import (
	"os"

	"github.com/davidlpuk/cv-tailor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
