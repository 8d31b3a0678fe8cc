package template

import (
	"github.com/emstudio/emsync/internal/script"
)

// ScriptData contains all data needed to render a model script.
type ScriptData struct {
	// Tool is the simulation tool key ("openems" or "palace").
	Tool string

	// File references, written verbatim into the script header.
	GdsFile       string
	TopCell       string
	SubstrateFile string

	// PortBlock is the rendered simulation port section. Empty means the
	// template's bare "all_simulation_ports()" line is kept.
	PortBlock string
}

// BuildScriptData assembles template data for a model script.
func BuildScriptData(tool, gdsFile, topCell, substrateFile string, ports []script.Port) *ScriptData {
	data := &ScriptData{
		Tool:          tool,
		GdsFile:       gdsFile,
		TopCell:       topCell,
		SubstrateFile: substrateFile,
	}

	if len(ports) > 0 {
		data.PortBlock = script.BuildPortBlock(ports)
	}

	return data
}
