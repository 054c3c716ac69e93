// Package cmd implements the bowl command line interface
package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables providing flag defaults. They may also be set
// in a .env file in the working directory.
const (
	ConfigEnv = "BOWLING_CONFIG"
	SeedEnv   = "BOWLING_SEED"
)

var (
	configFile string
	seed       uint64
)

// GetRootCommand returns the root command with all subcommands added
func GetRootCommand() *cobra.Command {
	// A missing .env file is fine, flags and defaults still apply
	_ = godotenv.Load()

	rootCommand := &cobra.Command{
		Use:   "bowl",
		Short: "bowl runs and inspects the bowling lane environment",
	}
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c",
		os.Getenv(ConfigEnv), "Environment config file (.json, .yaml)")
	rootCommand.PersistentFlags().Uint64VarP(&seed, "seed", "s",
		seedDefault(), "Seed for the start state and agent")

	rootCommand.AddCommand(RunCommand())
	rootCommand.AddCommand(LayoutCommand())
	return rootCommand
}

func seedDefault() uint64 {
	s, err := strconv.ParseUint(os.Getenv(SeedEnv), 10, 64)
	if err != nil {
		return 1
	}
	return s
}
