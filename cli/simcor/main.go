package main

import (
	"os"

	simcorcmder "github.com/alignlab/simcor/cmd/simcor"
)

func main() {
	cmd := simcorcmder.NewSimcorCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
