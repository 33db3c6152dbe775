package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "mosdl.toml")
	if err := os.WriteFile(manifest, []byte(buildDefaultManifest("demo")), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok, err := findManifest(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected manifest to be found from nested directory")
	}
	if found != manifest {
		t.Fatalf("found %q, want %q", found, manifest)
	}
}

func TestFindManifestMissing(t *testing.T) {
	_, ok, err := findManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no manifest in empty tree")
	}
}

func TestLoadProjectConfigDefaultManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mosdl.toml")
	if err := os.WriteFile(path, []byte(buildDefaultManifest("demo")), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("package name = %q, want %q", cfg.Package.Name, "demo")
	}
	if cfg.Generate.Output != "mosdl" {
		t.Errorf("output = %q, want %q", cfg.Generate.Output, "mosdl")
	}
	if cfg.Generate.Doc != "bulk" {
		t.Errorf("doc = %q, want %q", cfg.Generate.Doc, "bulk")
	}
	if len(cfg.Generate.Input) != 1 || cfg.Generate.Input[0] != "specs" {
		t.Errorf("input = %v, want [specs]", cfg.Generate.Input)
	}
}

func TestLoadProjectConfigRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mosdl.toml")
	if err := os.WriteFile(path, []byte("[package]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadProjectConfig(path); err == nil {
		t.Fatal("expected error for manifest without package name")
	}
}

func TestManifestInputsResolveRelative(t *testing.T) {
	m := &projectManifest{
		Root: filepath.Join("/", "proj"),
		Config: projectConfig{
			Generate: generateConfig{Input: []string{"specs", "", "  "}},
		},
	}
	inputs := manifestInputs(m)
	if len(inputs) != 1 {
		t.Fatalf("inputs = %v, want one entry", inputs)
	}
	want := filepath.Join("/", "proj", "specs")
	if inputs[0] != want {
		t.Errorf("input = %q, want %q", inputs[0], want)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in   string
		want uiMode
		err  bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"bogus", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
