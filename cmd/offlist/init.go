package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/offlist.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".offlist.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Offlist configuration file",
		Long: `Initialize creates a new .offlist.yaml configuration file in the current directory.

The generated file includes:
- A commented example profile with every supported identity field
- Examples for household members and custom scan sources
- Mail transport settings for automated opt-out requests

Examples:
  # Create .offlist.yaml in current directory
  offlist init

  # Create config file at a specific path
  offlist init -o myconfig.yaml

  # Force overwrite existing file
  offlist init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/offlist.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Config files hold PII, so keep them owner-readable only.
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to describe the identity to protect:")
	fmt.Println("  - Name, city, and state drive the scan URLs")
	fmt.Println("  - Emails and phones sharpen match confidence")
	fmt.Println("  - Mail settings enable automated opt-out requests")

	return nil
}
