package main

import (
	"log"

	"github.com/samuelfneumann/gobowl/cmd"
)

func main() {
	if err := cmd.GetRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
