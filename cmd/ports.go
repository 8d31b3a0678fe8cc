package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/emstudio/emsync/internal/script"
)

var portsFormat string

var portsCmd = &cobra.Command{
	Use:   "ports <script.py>",
	Short: "List the simulation ports defined in a model script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}

		ports := script.ParsePorts(string(data))

		switch portsFormat {
		case "yaml":
			out, err := yaml.Marshal(ports)
			if err != nil {
				return fmt.Errorf("encoding ports: %w", err)
			}
			fmt.Print(string(out))
		case "table":
			printPortTable(ports)
		default:
			return fmt.Errorf("unknown format %q (expected table or yaml)", portsFormat)
		}
		return nil
	},
}

func init() {
	portsCmd.Flags().StringVar(&portsFormat, "format", "table", "output format: table or yaml")
	rootCmd.AddCommand(portsCmd)
}

// printPortTable writes an aligned port table to stdout.
func printPortTable(ports []script.Port) {
	if len(ports) == 0 {
		fmt.Println("No ports defined.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PORT\tVOLTAGE\tZ0\tSOURCE\tFROM\tTO\tDIR")
	for _, p := range ports {
		fmt.Fprintf(w, "%d\t%g\t%g\t%s\t%s\t%s\t%s\n",
			p.Number, p.Voltage, p.Impedance, p.SourceLayer, p.FromLayer, p.ToLayer, p.Direction)
	}
	w.Flush()
}
