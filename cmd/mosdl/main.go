package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mosdl/internal/logging"
	"mosdl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mosdl",
	Short: "MOSDL generator for MO service specifications",
	Long:  `mosdl renders CCSDS MO service specification XML into the MOSDL service description language`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		colorFlag, _ := cmd.Flags().GetString("color")
		logging.Setup(verbosity, !useColor(colorFlag))
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(value string) bool {
	switch value {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
