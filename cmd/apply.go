package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/emstudio/emsync/internal/config"
	"github.com/emstudio/emsync/internal/script"
	"github.com/emstudio/emsync/internal/settings"
)

var (
	applySettingsFile string
	applyPortsFile    string
	applyOutput       string
	applyInPlace      bool
	applyTool         string
)

var applyCmd = &cobra.Command{
	Use:   "apply <script.py>",
	Short: "Apply an edited settings file back into a model script",
	Long: `Apply an edited settings file back into a model script.

Each setting is written into the assignment shape it was discovered in,
preserving comments, indentation and everything else in the script.
Boundary conditions, file references and the port block go through their
dedicated serializers. Settings without a matching assignment in the
script are skipped and reported, not raised as errors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		edits, err := settings.Load(applySettingsFile)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		if applyPortsFile != "" {
			ports, err := loadPortFile(applyPortsFile)
			if err != nil {
				return fmt.Errorf("loading ports: %w", err)
			}
			edits.Ports = ports
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		text := string(data)

		tool := applyTool
		if tool == "" {
			tool = edits.Tool
		}
		profile, err := cfg.Profile(tool)
		if err != nil {
			return err
		}

		out, skipped := applyEdits(text, edits, profile)

		if IsVerbose() {
			for _, key := range skipped {
				fmt.Fprintf(os.Stderr, "Skipping %s: no matching assignment in script\n", key)
			}
		}

		return writeScript(args[0], out)
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applySettingsFile, "settings", "s", "", "settings file to apply (required)")
	applyCmd.Flags().StringVar(&applyPortsFile, "ports", "", "port table file overriding the settings file's ports")
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "output script path (default: stdout)")
	applyCmd.Flags().BoolVar(&applyInPlace, "in-place", false, "rewrite the script file in place")
	applyCmd.Flags().StringVar(&applyTool, "tool", "", "simulation tool profile (default: from settings file)")
	applyCmd.MarkFlagRequired("settings")
	rootCmd.AddCommand(applyCmd)
}

// loadPortFile reads a standalone YAML port list.
func loadPortFile(path string) ([]script.Port, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ports []script.Port
	if err := yaml.Unmarshal(data, &ports); err != nil {
		return nil, err
	}

	for i, p := range ports {
		if p.Number <= 0 {
			return nil, fmt.Errorf("port %d: number must be positive, got %d", i+1, p.Number)
		}
	}
	return ports, nil
}

// applyEdits runs the full patch cycle: generic settings, boundary
// conditions, file references, then the port block. Returns the patched
// text and the list of skipped setting keys.
func applyEdits(text string, edits *settings.File, profile config.ToolProfile) (string, []string) {
	values := edits.Values()
	for _, key := range profile.ExcludedKeys {
		delete(values, key)
	}

	res := script.ApplySettings(text, values, script.Parse(text).WriteModes)
	text = res.Text

	if len(edits.Boundaries) > 0 {
		text = script.ApplyBoundaries(text, edits.Boundaries, profile.BoundariesTopLevel)
	}

	text = script.ApplyFileRefs(text, edits.GdsFile, edits.TopCell, edits.SubstrateFile)

	if len(edits.Ports) > 0 {
		text = script.ReplaceOrInsertPortBlock(text, script.BuildPortBlock(edits.Ports))
	}

	return text, res.Skipped
}

// writeScript routes the patched text to stdout, a new file, or back into
// the source file.
func writeScript(scriptPath, text string) error {
	switch {
	case applyInPlace:
		if err := os.WriteFile(scriptPath, []byte(text), 0644); err != nil {
			return fmt.Errorf("rewriting script: %w", err)
		}
		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "Updated %s\n", scriptPath)
		}
	case applyOutput != "":
		if err := os.WriteFile(applyOutput, []byte(text), 0644); err != nil {
			return fmt.Errorf("writing output script: %w", err)
		}
		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", applyOutput)
		}
	default:
		fmt.Print(text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Println()
		}
	}
	return nil
}
