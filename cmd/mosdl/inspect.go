package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mosdl/internal/loader"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Dump the parsed specification model as JSON",
	Long: `Parse one MO service specification XML file and print the resulting
model as indented JSON. Useful for debugging malformed specifications.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	model, err := loader.Load(args[0])
	if err != nil {
		return fmt.Errorf("inspect %s: %w", args[0], err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(model)
}
