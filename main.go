package main

import (
	"log"

	"mizman/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
