package script

import (
	"strings"
	"testing"
)

const portScript = `# ===================== input files and path settings =======================

gds_filename = "line.gds"

# port configuration, port geometry is read from GDSII file on the specified layer
simulation_ports = simulation_setup.all_simulation_ports()
simulation_ports.add_port(simulation_setup.simulation_port(portnumber=1, voltage=1, port_Z0=50, target_layername='M1', direction='z'))

# ======================== simulation ================================

materials_list, dielectrics_list, metals_list = stackup_reader.read_substrate(XML_filename)
`

func TestFindPortBlocks(t *testing.T) {
	blocks := findPortBlocks(portScript)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}

	got := portScript[blocks[0].start:blocks[0].end]
	if !strings.HasPrefix(got, "simulation_ports = simulation_setup.all_simulation_ports()") {
		t.Errorf("block start wrong:\n%s", got)
	}
	if !strings.HasSuffix(got, "direction='z'))\n") {
		t.Errorf("block must end right after the last add_port line:\n%q", got)
	}
	if strings.Contains(got, "simulation ===") {
		t.Error("block swallowed the simulation marker")
	}
}

func TestReplacePortBlock(t *testing.T) {
	block := BuildPortBlock([]Port{
		{Number: 1, Voltage: 1, Impedance: 50, ToLayer: "M1", Direction: "z"},
		{Number: 2, Voltage: 1, Impedance: 50, ToLayer: "M2", Direction: "z"},
	})

	out := ReplaceOrInsertPortBlock(portScript, block)

	if got := strings.Count(out, "all_simulation_ports()"); got != 1 {
		t.Errorf("output has %d port block headers, want 1", got)
	}
	if !strings.Contains(out, "portnumber=2") {
		t.Error("new port missing from output")
	}
	// Everything around the block survives.
	if !strings.Contains(out, `gds_filename = "line.gds"`) {
		t.Error("content before the block was damaged")
	}
	if !strings.Contains(out, "stackup_reader.read_substrate") {
		t.Error("content after the block was damaged")
	}
}

func TestReplacePortBlockIdempotent(t *testing.T) {
	block := BuildPortBlock([]Port{
		{Number: 1, Voltage: 1, Impedance: 50, ToLayer: "M1", Direction: "z"},
	})

	once := ReplaceOrInsertPortBlock(portScript, block)
	twice := ReplaceOrInsertPortBlock(once, block)

	if once != twice {
		t.Errorf("second rewrite changed the script:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestReplacePortBlockRemovesDuplicates(t *testing.T) {
	dup := portScript + `
simulation_ports = simulation_setup.all_simulation_ports()
simulation_ports.add_port(simulation_setup.simulation_port(portnumber=9, voltage=1, target_layername='M9'))
`

	block := BuildPortBlock([]Port{
		{Number: 1, Voltage: 1, Impedance: 50, ToLayer: "M1", Direction: "z"},
	})

	out := ReplaceOrInsertPortBlock(dup, block)

	if got := strings.Count(out, "all_simulation_ports()"); got != 1 {
		t.Errorf("output has %d port block headers, want 1", got)
	}
	if strings.Contains(out, "portnumber=9") {
		t.Error("duplicate block survived the rewrite")
	}
}

func TestInsertPortBlockBeforeMarker(t *testing.T) {
	text := `gds_filename = "line.gds"

# ======================== simulation ================================

run_everything()
`

	block := BuildPortBlock([]Port{
		{Number: 1, Voltage: 1, Impedance: 50, ToLayer: "M1", Direction: "z"},
	})

	out := ReplaceOrInsertPortBlock(text, block)

	markerPos := strings.Index(out, "# ======================== simulation")
	blockPos := strings.Index(out, "all_simulation_ports()")
	if blockPos < 0 || markerPos < 0 {
		t.Fatalf("missing block or marker in output:\n%s", out)
	}
	if blockPos > markerPos {
		t.Error("block must be inserted before the simulation marker")
	}
}

func TestInsertPortBlockAppendsWithoutMarker(t *testing.T) {
	text := `gds_filename = "line.gds"
`

	block := BuildPortBlock([]Port{
		{Number: 1, Voltage: 1, Impedance: 50, ToLayer: "M1", Direction: "z"},
	})

	out := ReplaceOrInsertPortBlock(text, block)

	if !strings.HasPrefix(out, text) {
		t.Error("existing content must stay at the top")
	}
	if !strings.Contains(out, "portnumber=1") {
		t.Error("block missing from output")
	}
}
