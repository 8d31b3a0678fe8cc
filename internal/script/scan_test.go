package script

import (
	"testing"

	"github.com/emstudio/emsync/internal/pyliteral"
)

const scanSample = `import os

settings = {}

gds_filename = "line_simple.gds"   # geometries
gds_cellname = ""
XML_filename = 'SG13G2.xml'

settings['margin'] = 50    # @brief Distance from geometry boundary
settings['fstart'] = 0e9
settings['preview_only'] = False  # preview without simulation

Boundaries = ['PEC', 'PEC', 'PEC', 'PEC', 'PEC', 'PEC']
margin = 40

sim_path = utilities.create_sim_path(script_path, model_basename)
allpolygons = gds_reader.read_gds(gds_filename,
                                  layernumbers,
                                  cellname=gds_cellname)
`

func TestScanAssignments(t *testing.T) {
	res := scanAssignments(scanSample)

	tests := []struct {
		key   string
		value pyliteral.Value
		mode  WriteMode
	}{
		{"margin", pyliteral.IntValue(50), DictKeyAssignment},
		{"fstart", pyliteral.FloatValue(0), DictKeyAssignment},
		{"preview_only", pyliteral.BoolValue(false), DictKeyAssignment},
		{"Boundaries", pyliteral.StringValue("['PEC', 'PEC', 'PEC', 'PEC', 'PEC', 'PEC']"), TopLevelAssignment},
	}

	for _, tt := range tests {
		s, ok := res.settings[tt.key]
		if !ok {
			t.Errorf("missing setting %q", tt.key)
			continue
		}
		if !s.Value.Equal(tt.value) {
			t.Errorf("%s: value = %v, want %v", tt.key, s.Value, tt.value)
		}
		if s.Mode != tt.mode {
			t.Errorf("%s: mode = %s, want %s", tt.key, s.Mode, tt.mode)
		}
		if res.modes[tt.key] != tt.mode {
			t.Errorf("%s: modes map disagrees with setting", tt.key)
		}
	}
}

func TestScanDictOverridesTopLevel(t *testing.T) {
	// margin appears both dict-style and top-level; the dict form wins even
	// though the top-level form comes later in the scan order.
	res := scanAssignments(scanSample)

	s := res.settings["margin"]
	if s.Mode != DictKeyAssignment {
		t.Errorf("margin mode = %s, want dict", s.Mode)
	}
	if s.Value.IntV != 50 {
		t.Errorf("margin value = %d, want 50 (dict form)", s.Value.IntV)
	}
}

func TestScanSkipsNonSettings(t *testing.T) {
	res := scanAssignments(scanSample)

	for _, key := range []string{
		"gds_filename", "gds_cellname", "XML_filename", // file refs
		"sim_path", "allpolygons", // call results
		"layernumbers", "cellname", // multi-line call fragments
	} {
		if _, ok := res.settings[key]; ok {
			t.Errorf("scan should not record %q as a setting", key)
		}
	}
}

func TestScanTrailingComment(t *testing.T) {
	res := scanAssignments(scanSample)

	if got := res.settings["margin"].Comment; got != "@brief Distance from geometry boundary" {
		t.Errorf("margin comment = %q", got)
	}
	if got := res.settings["fstart"].Comment; got != "" {
		t.Errorf("fstart comment = %q, want empty", got)
	}
}

func TestScanLineNumbers(t *testing.T) {
	res := scanAssignments(scanSample)

	if got := res.settings["margin"].Line; got != 9 {
		t.Errorf("margin line = %d, want 9", got)
	}
}

func TestScanDuplicateSameShapeKeepsFirst(t *testing.T) {
	text := "settings['margin'] = 50\nsettings['margin'] = 60\n"
	res := scanAssignments(text)

	if got := res.settings["margin"].Value.IntV; got != 50 {
		t.Errorf("duplicate dict assignment: value = %d, want first occurrence 50", got)
	}
	if len(res.order) != 1 {
		t.Errorf("order length = %d, want 1", len(res.order))
	}
}

func TestScanFileRefs(t *testing.T) {
	gds, xml := scanFileRefs(scanSample)

	if gds != "line_simple.gds" {
		t.Errorf("gds = %q, want line_simple.gds", gds)
	}
	if xml != "SG13G2.xml" {
		t.Errorf("xml = %q, want SG13G2.xml", xml)
	}
}
