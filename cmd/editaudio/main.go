package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"codeberg.org/snonux/editaudio/internal/cli"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command; config is read before every subcommand runs
	rootCmd := cli.CreateRootCommand(flags)

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
