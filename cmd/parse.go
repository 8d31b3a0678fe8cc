package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/emstudio/emsync/internal/config"
	"github.com/emstudio/emsync/internal/keywords"
	"github.com/emstudio/emsync/internal/script"
	"github.com/emstudio/emsync/internal/settings"
)

var (
	parseFormat   string
	parseTool     string
	parseKeywords string
	parseOutput   string
)

var parseCmd = &cobra.Command{
	Use:   "parse <script.py>",
	Short: "Parse settings, tooltips and ports from a model script",
	Long: `Parse settings, tooltips and ports from a model script.

Prints a structured report of every discovered setting with its decoded
value, assignment shape and tooltip. With -o, additionally writes an
editable settings file that can be fed back into "emsync apply".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		res := script.ParseFile(args[0])
		if res.Error != "" && !res.Ok {
			return fmt.Errorf("parsing script: %s", res.Error)
		}

		mergeKeywordTips(cfg, &res)

		report := buildParseReport(args[0], res)

		if parseOutput != "" {
			f := settings.FromResult(res)
			f.Tool = parseTool
			if err := f.Save(parseOutput); err != nil {
				return fmt.Errorf("writing settings file: %w", err)
			}
			if IsVerbose() {
				fmt.Fprintf(os.Stderr, "Wrote %d settings to %s\n", len(f.Settings), parseOutput)
			}
		}

		return printReport(report, parseFormat)
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "yaml", "output format: yaml or json")
	parseCmd.Flags().StringVar(&parseTool, "tool", "", "simulation tool profile (default: from config)")
	parseCmd.Flags().StringVar(&parseKeywords, "keywords", "", "keyword description file override")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "write an editable settings file")
	rootCmd.AddCommand(parseCmd)
}

// mergeKeywordTips fills in tooltips for keys the model script does not
// document, using the tool profile's keyword file.
func mergeKeywordTips(cfg *config.Config, res *script.Result) {
	path := parseKeywords
	if path == "" {
		profile, err := cfg.Profile(parseTool)
		if err != nil {
			return
		}
		path = profile.KeywordsFile
	}
	if path == "" {
		return
	}

	fallback, err := keywords.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read keyword file %s: %v\n", path, err)
		return
	}

	// Only keep fallbacks for keys that exist as settings.
	known := make(map[string]string)
	for key, desc := range fallback {
		if _, ok := res.Settings[key]; ok {
			known[key] = desc
		}
	}
	res.Tips = keywords.Merge(res.Tips, known)
}

// settingReport is one settings entry in the parse report.
type settingReport struct {
	Key   string      `yaml:"key" json:"key"`
	Value interface{} `yaml:"value" json:"value"`
	Type  string      `yaml:"type" json:"type"`
	Mode  string      `yaml:"mode" json:"mode"`
	Line  int         `yaml:"line" json:"line"`
	Tip   string      `yaml:"tip,omitempty" json:"tip,omitempty"`
}

// parseReport is the serialized output of the parse command.
type parseReport struct {
	Script        string          `yaml:"script" json:"script"`
	SimPath       string          `yaml:"sim_path,omitempty" json:"sim_path,omitempty"`
	GdsFile       string          `yaml:"gds_file,omitempty" json:"gds_file,omitempty"`
	SubstrateFile string          `yaml:"substrate_file,omitempty" json:"substrate_file,omitempty"`
	Settings      []settingReport `yaml:"settings" json:"settings"`
	Ports         []script.Port   `yaml:"ports,omitempty" json:"ports,omitempty"`
}

// buildParseReport flattens a parse result into discovery order.
func buildParseReport(path string, res script.Result) parseReport {
	report := parseReport{
		Script:        path,
		SimPath:       res.SimPath,
		GdsFile:       res.GdsFilename,
		SubstrateFile: res.XMLFilename,
		Ports:         res.Ports,
	}

	for _, key := range res.Order {
		s := res.Settings[key]
		report.Settings = append(report.Settings, settingReport{
			Key:   key,
			Value: s.Value.Interface(),
			Type:  s.Value.Kind.String(),
			Mode:  s.Mode.String(),
			Line:  s.Line,
			Tip:   res.Tips[key],
		})
	}

	return report
}

// printReport writes the report to stdout in the requested format.
func printReport(report parseReport, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Print(string(data))
	default:
		return fmt.Errorf("unknown format %q (expected yaml or json)", format)
	}
	return nil
}
