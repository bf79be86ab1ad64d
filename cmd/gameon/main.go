package main

import (
	"log"

	"github.com/biologicmachine-lab/GameOn/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
