package template

import (
	"strings"
	"testing"

	"github.com/emstudio/emsync/internal/script"
)

func TestDefaultScriptKnownTools(t *testing.T) {
	for _, tool := range []string{"openems", "palace", "OpenEMS"} {
		if _, err := DefaultScript(tool); err != nil {
			t.Errorf("DefaultScript(%q) failed: %v", tool, err)
		}
	}

	if _, err := DefaultScript("sonnet"); err == nil {
		t.Error("unknown tool must be an error")
	}
}

func TestRenderOpenemsScript(t *testing.T) {
	text, err := DefaultScript("openems")
	if err != nil {
		t.Fatal(err)
	}

	engine := New()
	if err := engine.LoadString("model", text); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	data := BuildScriptData("openems", `C:\proj\line.gds`, "TOP", "tech.xml", nil)
	out, err := engine.Render("model", data)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(out, `gds_filename = "C:/proj/line.gds"`) {
		t.Error("gds path not rendered with forward slashes and double quotes")
	}
	if !strings.Contains(out, `gds_cellname = "TOP"`) {
		t.Error("top cell not rendered")
	}
	if !strings.Contains(out, `XML_filename = "tech.xml"`) {
		t.Error("substrate file not rendered")
	}
	if !strings.Contains(out, "simulation_ports = simulation_setup.all_simulation_ports()") {
		t.Error("bare port header missing when no ports are given")
	}
}

func TestRenderScriptWithPorts(t *testing.T) {
	text, err := DefaultScript("palace")
	if err != nil {
		t.Fatal(err)
	}

	engine := New()
	if err := engine.LoadString("model", text); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	ports := []script.Port{
		{Number: 1, Voltage: 1, Impedance: 50, SourceLayer: "201", FromLayer: "Metal1", ToLayer: "TopMetal2", Direction: "z"},
	}
	data := BuildScriptData("palace", "line.gds", "", "tech.xml", ports)

	out, err := engine.Render("model", data)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := script.ParsePorts(out); len(got) != 1 || got[0].Number != 1 {
		t.Errorf("rendered script ports = %+v", got)
	}
	if strings.Count(out, "all_simulation_ports()") != 1 {
		t.Error("rendered script must have exactly one port block header")
	}
}

func TestRenderedScriptParses(t *testing.T) {
	// A freshly scaffolded script must be a valid input for the parse
	// direction.
	for _, tool := range []string{"openems", "palace"} {
		text, err := DefaultScript(tool)
		if err != nil {
			t.Fatal(err)
		}

		engine := New()
		if err := engine.LoadString("model", text); err != nil {
			t.Fatalf("LoadString failed: %v", err)
		}

		out, err := engine.Render("model", BuildScriptData(tool, "line.gds", "", "tech.xml", nil))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		res := script.Parse(out)
		if !res.Ok {
			t.Errorf("%s: rendered script does not parse: %s", tool, res.Error)
			continue
		}
		if _, ok := res.Settings["margin"]; !ok {
			t.Errorf("%s: margin setting missing from rendered script", tool)
		}
		if res.GdsFilename != "line.gds" {
			t.Errorf("%s: gds filename = %q", tool, res.GdsFilename)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	engine := New()
	if err := engine.LoadFile("model", "does/not/exist.tmpl"); err == nil {
		t.Error("missing template file must be an error")
	}
}

func TestRenderUnloadedTemplate(t *testing.T) {
	engine := New()
	if _, err := engine.Render("nope", nil); err == nil {
		t.Error("rendering an unloaded template must be an error")
	}
}

func TestIndent(t *testing.T) {
	if got := indent(4, "a\n\nb"); got != "    a\n\n    b" {
		t.Errorf("indent = %q", got)
	}
}

func TestPyValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{true, "True"},
		{nil, "None"},
		{50, "50"},
		{"PEC", "'PEC'"},
	}

	for _, tt := range tests {
		if got := pyValue(tt.in); got != tt.want {
			t.Errorf("pyValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
