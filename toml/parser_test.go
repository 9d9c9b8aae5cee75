package toml

import (
	"testing"
)

// TestParse_GameConfig exercises the parser with a game.toml shaped the way
// config.Load actually reads it: flat [world]/[yang] tables of ints/strings,
// the only shape luxengine ever feeds through Parse.
func TestParse_GameConfig(t *testing.T) {
	input := []byte(`
[world]
tile_width = 16
tile_height = 16
cell_width = 8
cell_height = 8
half_size = 3
hash_cell_size = 128

[yang]
script_dir = "scripts/demo"
`)

	p := NewParser(input)
	raw, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	world, ok := raw["world"].(map[string]any)
	if !ok {
		t.Fatalf("world: expected table, got %T", raw["world"])
	}
	if v, ok := world["half_size"].(int); !ok || v != 3 {
		t.Errorf("world.half_size mismatch: got %v (%T)", world["half_size"], world["half_size"])
	}
	if v, ok := world["hash_cell_size"].(int); !ok || v != 128 {
		t.Errorf("world.hash_cell_size mismatch: got %v (%T)", world["hash_cell_size"], world["hash_cell_size"])
	}

	yang, ok := raw["yang"].(map[string]any)
	if !ok {
		t.Fatalf("yang: expected table, got %T", raw["yang"])
	}
	if v, ok := yang["script_dir"].(string); !ok || v != "scripts/demo" {
		t.Errorf("yang.script_dir mismatch: got %v", yang["script_dir"])
	}
}

// TestParse_MissingSectionsAreAbsent confirms Parse doesn't fabricate
// sections config.Load never asked for, since applyWorld/applyYang both
// treat a missing table as "keep defaults" rather than an error.
func TestParse_MissingSectionsAreAbsent(t *testing.T) {
	raw, err := NewParser([]byte("title = \"untitled\"\n")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := raw["world"]; ok {
		t.Error("expected no world table")
	}
	if _, ok := raw["yang"]; ok {
		t.Error("expected no yang table")
	}
}

// TestParse_MalformedTable verifies a parse error propagates for a
// malformed table header, the case config.Load surfaces as "parse %s".
func TestParse_MalformedTable(t *testing.T) {
	_, err := NewParser([]byte("[world\ntile_width = 16\n")).Parse()
	if err == nil {
		t.Error("expected error for unterminated table header")
	}
}

// TestParse_DuplicateKeyRejected matches config's expectation that a
// malformed file is a hard error rather than silently picking one value.
func TestParse_DuplicateKeyRejected(t *testing.T) {
	_, err := NewParser([]byte("half_size = 1\nhalf_size = 2\n")).Parse()
	if err == nil {
		t.Error("expected error for duplicate key")
	}
}
