package main

import (
	"log"

	"github.com/xtding233/legend-sim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("legend-sim: %v", err)
	}
}
