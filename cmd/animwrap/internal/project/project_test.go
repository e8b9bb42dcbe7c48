package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("root = %q, want %q", got, want)
	}
}

func TestResolveDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/org/buttons/v2\n\ngo 1.24\n")

	r, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.ModulePath != "example.com/org/buttons/v2" {
		t.Errorf("ModulePath = %q", r.ModulePath)
	}
	if r.Name != "buttons" {
		t.Errorf("Name = %q, want buttons", r.Name)
	}
	if r.Document != filepath.Join(root, DefaultDocument) {
		t.Errorf("Document = %q", r.Document)
	}
	if r.Preview.FPS != 30 || r.Preview.Width != 320 || r.Preview.Height != 240 || r.Preview.Out != "preview" {
		t.Errorf("Preview defaults = %+v", r.Preview)
	}
}

func TestResolveSettings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n")
	writeFile(t, filepath.Join(root, SettingsFile), `
document: ui/anims.yaml
preview:
  fps: 60
  width: 200
  height: 100
logging:
  level: debug
  format: json
`)

	r, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Document != filepath.Join(root, "ui", "anims.yaml") {
		t.Errorf("Document = %q", r.Document)
	}
	if r.Preview.FPS != 60 || r.Preview.Width != 200 || r.Preview.Height != 100 {
		t.Errorf("Preview = %+v", r.Preview)
	}
	if r.Logging.Level != "debug" || r.Logging.Format != "json" {
		t.Errorf("Logging = %+v", r.Logging)
	}
}

func TestResolveRejectsBadSettings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n")
	writeFile(t, filepath.Join(root, SettingsFile), "preview:\n  fps: 1000\n")

	_, err := Resolve(root)
	if err == nil || !strings.Contains(err.Error(), "FPS") {
		t.Fatalf("err = %v, want FPS validation error", err)
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Fatal("expected error without go.mod")
	}
}
