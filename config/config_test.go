package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.json")

	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if cfg != Defaults() {
		t.Fatal("a missing file must yield the defaults")
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	content := `{
		"resolution": 0.05,
		"small_room_merge": {"min_area": 6.0}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Resolution != 0.05 {
		t.Fatalf("resolution not overridden: %f", cfg.Resolution)
	}
	if cfg.SmallRoomMinArea != 6.0 {
		t.Fatalf("min area not overridden: %f", cfg.SmallRoomMinArea)
	}

	defaults := Defaults()
	if cfg.SmallRoomMaxMergeDistance != defaults.SmallRoomMaxMergeDistance {
		t.Fatal("untouched keys must keep their defaults")
	}
	if cfg.RootLat != defaults.RootLat || !cfg.SimplifyEnabled {
		t.Fatal("untouched sections must keep their defaults")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)

	if err == nil {
		t.Fatal("expected a parse error")
	}
	if cfg != Defaults() {
		t.Fatal("a malformed file must yield the defaults")
	}
}

func TestLoadDisablesStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	content := `{"spike_removal": {"enabled": false}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SpikeRemovalEnabled {
		t.Fatal("explicit false must win over the default")
	}
	if cfg.SpikeAngleThreshold != Defaults().SpikeAngleThreshold {
		t.Fatal("sibling keys must keep their defaults")
	}
}

func TestMustLoadEmptyPath(t *testing.T) {
	if MustLoad("") != Defaults() {
		t.Fatal("an empty path must yield the defaults")
	}
}
