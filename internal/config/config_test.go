package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.DefaultTool != "openems" {
		t.Errorf("default tool = %q", cfg.DefaultTool)
	}

	p, err := cfg.Profile("openems")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if !p.BoundariesTopLevel {
		t.Error("openems profile must write top-level boundaries")
	}

	p, err = cfg.Profile("palace")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.BoundariesTopLevel {
		t.Error("palace profile must not write top-level boundaries")
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultTool != "openems" {
		t.Errorf("default tool = %q", cfg.DefaultTool)
	}
}

func TestLoadFile(t *testing.T) {
	content := `default_tool: palace
tools:
  palace:
    boundaries_top_level: false
    keywords_file: custom/palace.csv
    excluded_keys:
      - fdump
`

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p, err := cfg.Profile("")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.KeywordsFile != "custom/palace.csv" {
		t.Errorf("keywords file = %q", p.KeywordsFile)
	}
	if len(p.ExcludedKeys) != 1 || p.ExcludedKeys[0] != "fdump" {
		t.Errorf("excluded keys = %v", p.ExcludedKeys)
	}
}

func TestProfileCaseInsensitive(t *testing.T) {
	cfg := Default()

	if _, err := cfg.Profile("OpenEMS"); err != nil {
		t.Errorf("profile lookup must be case-insensitive: %v", err)
	}
}

func TestProfileUnknownTool(t *testing.T) {
	cfg := Default()

	if _, err := cfg.Profile("sonnet"); err == nil {
		t.Error("unknown tool must be an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{DefaultTool: "openems", Tools: map[string]ToolProfile{"openems": {}}}, false},
		{"no tools", Config{DefaultTool: "openems"}, true},
		{"no default", Config{Tools: map[string]ToolProfile{"openems": {}}}, true},
		{"default without profile", Config{DefaultTool: "sonnet", Tools: map[string]ToolProfile{"openems": {}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
