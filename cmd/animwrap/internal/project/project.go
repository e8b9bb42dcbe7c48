// Package project locates the Go module an animwrap invocation runs in and
// reads its optional animwrap.yaml settings.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/animwrap/pkg/telemetry"
)

// SettingsFile is the name of the optional per-project settings file.
const SettingsFile = "animwrap.yaml"

// DefaultDocument is the animation document used when none is configured.
const DefaultDocument = "animations.yaml"

// Settings represents animwrap.yaml.
type Settings struct {
	Document string                  `yaml:"document,omitempty"`
	Preview  PreviewSettings         `yaml:"preview"`
	Logging  telemetry.LoggingConfig `yaml:"logging"`
}

// PreviewSettings are defaults for `animwrap preview`.
type PreviewSettings struct {
	FPS    int    `yaml:"fps,omitempty" validate:"omitempty,gte=1,lte=240"`
	Width  int    `yaml:"width,omitempty" validate:"omitempty,gte=16,lte=4096"`
	Height int    `yaml:"height,omitempty" validate:"omitempty,gte=16,lte=4096"`
	Out    string `yaml:"out,omitempty"`
}

// Resolved contains settings with defaults applied.
type Resolved struct {
	Root       string
	ModulePath string
	Name       string
	// Document is the absolute path of the animation document.
	Document string
	Preview  PreviewSettings
	Logging  telemetry.LoggingConfig
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadOptional reads animwrap.yaml from dir if present.
func LoadOptional(dir string) (*Settings, error) {
	path := filepath.Join(dir, SettingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SettingsFile, err)
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return &s, nil
}

// Resolve loads animwrap.yaml (if present) from the module rooted at dir
// and fills in defaults.
func Resolve(dir string) (*Resolved, error) {
	modPath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	s, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	doc := strings.TrimSpace(s.Document)
	if doc == "" {
		doc = DefaultDocument
	}
	if !filepath.IsAbs(doc) {
		doc = filepath.Join(dir, doc)
	}

	preview := s.Preview
	if preview.FPS == 0 {
		preview.FPS = 30
	}
	if preview.Width == 0 || preview.Height == 0 {
		preview.Width, preview.Height = 320, 240
	}
	if preview.Out == "" {
		preview.Out = "preview"
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modPath,
		Name:       defaultName(modPath, dir),
		Document:   doc,
		Preview:    preview,
		Logging:    s.Logging,
	}, nil
}

// FindProjectRoot walks up from start to find go.mod.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultName is the last module path element with any /vN suffix dropped.
func defaultName(modPath, dir string) string {
	base := filepath.Base(dir)
	prefix, _, ok := module.SplitPathVersion(modPath)
	if ok {
		parts := strings.Split(prefix, "/")
		if last := parts[len(parts)-1]; last != "" {
			base = last
		}
	}
	return base
}
