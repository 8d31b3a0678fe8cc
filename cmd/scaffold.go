package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/emstudio/emsync/internal/config"
	"github.com/emstudio/emsync/internal/script"
	"github.com/emstudio/emsync/internal/settings"
	"github.com/emstudio/emsync/internal/template"
)

var (
	scaffoldTool     string
	scaffoldSettings string
	scaffoldTemplate string
	scaffoldForce    bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <output.py>",
	Short: "Generate a new model script from template",
	Long: `Generate a new model script from template.

Creates a starter model script for the selected simulation tool. With
--settings, file references, ports and setting values from an edit set
are written into the generated script.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		return scaffoldScript(cfg, args[0])
	},
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldTool, "tool", "", "simulation tool: openems or palace (default: from config)")
	scaffoldCmd.Flags().StringVar(&scaffoldSettings, "settings", "", "settings file to prefill the script with")
	scaffoldCmd.Flags().StringVar(&scaffoldTemplate, "template", "", "path to a custom script template")
	scaffoldCmd.Flags().BoolVar(&scaffoldForce, "force", false, "overwrite existing file if present")
	rootCmd.AddCommand(scaffoldCmd)
}

// scaffoldScript renders a model script template and writes it to disk.
func scaffoldScript(cfg *config.Config, outputPath string) error {
	tool := scaffoldTool
	if tool == "" {
		tool = cfg.DefaultTool
	}

	profile, err := cfg.Profile(tool)
	if err != nil {
		return err
	}

	var edits *settings.File
	if scaffoldSettings != "" {
		edits, err = settings.Load(scaffoldSettings)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
	}

	if _, err := os.Stat(outputPath); err == nil && !scaffoldForce {
		return fmt.Errorf("file %s already exists (use --force to overwrite)", outputPath)
	}

	engine := template.New()
	if scaffoldTemplate != "" {
		if err := engine.LoadFile("model", scaffoldTemplate); err != nil {
			return err
		}
	} else {
		text, err := template.DefaultScript(tool)
		if err != nil {
			return err
		}
		if err := engine.LoadString("model", text); err != nil {
			return err
		}
	}

	data := &template.ScriptData{Tool: tool}
	if edits != nil {
		data = template.BuildScriptData(tool, edits.GdsFile, edits.TopCell, edits.SubstrateFile, edits.Ports)
	}

	output, err := engine.Render("model", data)
	if err != nil {
		return err
	}

	// Setting values and boundaries go through the normal patch path so the
	// generated script matches what a later apply would produce.
	if edits != nil {
		res := script.ApplySettings(output, edits.Values(), script.Parse(output).WriteModes)
		output = res.Text
		if len(edits.Boundaries) > 0 {
			output = script.ApplyBoundaries(output, edits.Boundaries, profile.BoundariesTopLevel)
		}
		if IsVerbose() {
			for _, key := range res.Skipped {
				fmt.Fprintf(os.Stderr, "Skipping %s: not present in %s template\n", key, tool)
			}
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("writing script: %w", err)
	}

	fmt.Printf("Created %s\n", outputPath)
	return nil
}
