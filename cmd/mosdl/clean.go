package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mosdl/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the mosdl render cache",
	Long:  "Remove the on-disk render cache used to skip re-rendering unchanged specification files.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("mosdl")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "render cache removed")
	return nil
}
