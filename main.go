package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spigell/hh-matcher/cmd"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
