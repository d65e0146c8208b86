// Package main is the entry point for the rsa-forge-cli application.
// It initializes the root command, registers the key and crypto sub-commands
// and executes the command-line interface.
package main

import (
	"fmt"
	"log"

	commands "rsa_forge_service/cmd/rsa-forge-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "rsa-forge-cli",
		Short: "Textbook RSA operations CLI tool",
		Long: `rsa-forge-cli is a command-line tool for textbook RSA operations.
Supports key pair generation with a Solovay-Strassen primality test,
per-byte encryption and decryption of files and inspection of stored keys.`,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	if err := commands.InitCryptoCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize crypto commands: %w", err)
	}

	if err := commands.InitKeyStoreCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key store commands: %w", err)
	}

	return nil
}
