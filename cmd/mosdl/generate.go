package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mosdl/internal/driver"
	"mosdl/internal/observ"
	"mosdl/internal/render"
)

var (
	generateOutput  string
	generateDoc     string
	generateStdout  bool
	generateNoCache bool
	generateUI      string
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory for .mosdl files")
	generateCmd.Flags().StringVar(&generateDoc, "doc", "", "documentation mode (bulk|inline|suppress)")
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print rendered MOSDL instead of writing files")
	generateCmd.Flags().BoolVar(&generateNoCache, "no-cache", false, "bypass the render cache")
	generateCmd.Flags().StringVar(&generateUI, "ui", "auto", "progress UI (auto|on|off)")
}

var generateCmd = &cobra.Command{
	Use:   "generate [file|dir ...]",
	Short: "Render MO specification XML into MOSDL",
	Long: `Render one or more MO service specification XML files into MOSDL text,
one output file per area. Directories are walked for .xml files. Without
arguments the inputs come from the [generate] section of mosdl.toml.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputs := args
	outputDir := generateOutput
	docValue := generateDoc

	if len(inputs) == 0 || outputDir == "" || docValue == "" {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if ok {
			if len(inputs) == 0 {
				inputs = manifestInputs(manifest)
			}
			if outputDir == "" {
				outputDir = manifest.Config.Generate.Output
			}
			if docValue == "" {
				docValue = manifest.Config.Generate.Doc
			}
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs: pass files or directories, or set [generate].input in mosdl.toml")
	}

	docMode, err := render.ParseDocMode(docValue)
	if err != nil {
		return err
	}
	uiValue, err := readUIMode(generateUI)
	if err != nil {
		return err
	}

	opts := driver.GenerateOptions{
		Render:    render.Options{Doc: docMode},
		OutputDir: outputDir,
		Stdout:    generateStdout,
		SkipCache: generateNoCache,
	}

	if !generateNoCache {
		cache, err := driver.OpenDiskCache("mosdl")
		if err == nil {
			opts.Cache = cache
		}
	}

	showTimings, _ := cmd.Flags().GetBool("timings")
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	useTUI := shouldUseTUI(uiValue) && !generateStdout && !quiet

	var results []driver.FileResult
	if useTUI {
		results, err = runGenerateWithUI(cmd.Context(), "mosdl generate", inputs, opts)
	} else {
		results, err = driver.Generate(cmd.Context(), inputs, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if generateStdout {
		for _, result := range results {
			for _, area := range result.Areas {
				if _, err := out.Write(area.Text); err != nil {
					return err
				}
			}
		}
	} else if !quiet && !useTUI {
		total := 0
		for _, result := range results {
			total += len(result.Areas)
		}
		fmt.Fprintf(out, "generated %d area(s) from %d file(s)\n", total, len(results))
	}

	if showTimings {
		fmt.Fprint(os.Stderr, strings.TrimRight(opts.Timer.Summary(), "\n")+"\n")
	}
	return nil
}
