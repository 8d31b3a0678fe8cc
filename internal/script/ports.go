package script

import (
	"strconv"
	"strings"

	"github.com/emstudio/emsync/internal/pyliteral"
)

// Port is one simulation port extracted from an add_port(...) call, or one
// row of the edited port table.
type Port struct {
	Number      int     `yaml:"number" json:"number"`
	Voltage     float64 `yaml:"voltage" json:"voltage"`
	Impedance   float64 `yaml:"impedance" json:"impedance"`
	SourceLayer string  `yaml:"source_layer,omitempty" json:"source_layer,omitempty"`
	SourceIsNum bool    `yaml:"source_is_num,omitempty" json:"source_is_num,omitempty"`
	FromLayer   string  `yaml:"from_layer,omitempty" json:"from_layer,omitempty"`
	ToLayer     string  `yaml:"to_layer,omitempty" json:"to_layer,omitempty"`
	Direction   string  `yaml:"direction,omitempty" json:"direction,omitempty"`
}

// DefaultImpedance is assumed when a port call omits port_Z0.
const DefaultImpedance = 50

// ParsePorts extracts all ports from simulation_ports.add_port(
// simulation_setup.simulation_port(...)) calls in textual order. Keyword
// arguments may appear in any order and span multiple lines. Calls without
// a positive portnumber are dropped.
func ParsePorts(text string) []Port {
	var out []Port

	for _, m := range portCallRe.FindAllStringSubmatch(text, -1) {
		args := m[1]

		p := Port{Impedance: DefaultImpedance, Direction: "z"}

		if v, ok := matchIntArg(args, "portnumber"); ok {
			p.Number = v
		}
		if v, ok := matchNumArg(args, "voltage"); ok {
			p.Voltage = v
		}
		if v, ok := matchNumArg(args, "port_Z0"); ok {
			p.Impedance = v
		}

		if v, ok := matchIntArg(args, "source_layernum"); ok {
			p.SourceLayer = strconv.Itoa(v)
			p.SourceIsNum = true
		} else if s, ok := matchStrArg(args, "source_layername"); ok {
			p.SourceLayer = s
		}

		if s, ok := matchStrArg(args, "from_layername"); ok {
			p.FromLayer = s
		}
		if s, ok := matchStrArg(args, "to_layername"); ok {
			p.ToLayer = s
		}
		if p.FromLayer == "" && p.ToLayer == "" {
			if s, ok := matchStrArg(args, "target_layername"); ok {
				p.ToLayer = s
			}
		}

		if s, ok := matchStrArg(args, "direction"); ok && s != "" {
			p.Direction = strings.ToLower(s)
		}

		if p.Number > 0 {
			out = append(out, p)
		}
	}

	return out
}

func matchIntArg(args, key string) (int, bool) {
	m := intArgRe(key).FindStringSubmatch(args)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

func matchNumArg(args, key string) (float64, bool) {
	m := numArgRe(key).FindStringSubmatch(args)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func matchStrArg(args, key string) (string, bool) {
	m := strArgRe(key).FindStringSubmatch(args)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

// BuildPortBlock generates the canonical port definition block for a port
// list: the all_simulation_ports() line followed by one add_port call per
// port. Returns an empty string when the list is empty.
func BuildPortBlock(ports []Port) string {
	if len(ports) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("simulation_ports = simulation_setup.all_simulation_ports()\n")

	for _, p := range ports {
		var args []string

		if p.Number != 0 {
			args = append(args, "portnumber="+strconv.Itoa(p.Number))
		}
		if p.Voltage != 0 {
			args = append(args, "voltage="+formatNum(p.Voltage))
		}
		if p.Impedance != 0 {
			args = append(args, "port_Z0="+formatNum(p.Impedance))
		}

		if src := strings.TrimSpace(p.SourceLayer); src != "" {
			if n, err := strconv.Atoi(src); err == nil {
				args = append(args, "source_layernum="+strconv.Itoa(n))
			} else {
				args = append(args, "source_layername="+pyliteral.QuoteSingle(src))
			}
		}

		from := strings.TrimSpace(p.FromLayer)
		to := strings.TrimSpace(p.ToLayer)
		switch {
		case from != "" && to != "":
			args = append(args, "from_layername="+pyliteral.QuoteSingle(from))
			args = append(args, "to_layername="+pyliteral.QuoteSingle(to))
		case from != "":
			args = append(args, "target_layername="+pyliteral.QuoteSingle(from))
		case to != "":
			args = append(args, "target_layername="+pyliteral.QuoteSingle(to))
		}

		dir := strings.TrimSpace(p.Direction)
		if dir == "" {
			dir = "z"
		}
		args = append(args, "direction="+pyliteral.QuoteSingle(dir))

		b.WriteString("simulation_ports.add_port(simulation_setup.simulation_port(")
		b.WriteString(strings.Join(args, ", "))
		b.WriteString("))\n")
	}

	return b.String()
}

// formatNum renders a numeric port argument the way the model scripts write
// them: integral values without a decimal point.
func formatNum(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', 12, 64)
}
