// Package config loads and saves the application preferences. The file is
// YAML by default; a .toml extension selects TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mesh-creator/internal/editor"

	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the preferences file, relative to the process working directory.
const DefaultPath = "config/meshcreator.yaml"

// Environment variables overriding file locations. They may come from .env.
const (
	EnvConfigPath = "MESHCREATOR_CONFIG"
	EnvPresetDir  = "MESHCREATOR_PRESETS"
)

// Prefs holds the application preferences. Persisted across runs.
type Prefs struct {
	Window WindowPrefs    `yaml:"window" toml:"window"`
	Editor editor.Options `yaml:"editor" toml:"editor"`
	Camera CameraPrefs    `yaml:"camera" toml:"camera"`
	// ScriptTimeout bounds a single Generate run.
	ScriptTimeout time.Duration `yaml:"script_timeout" toml:"script_timeout"`
	// PresetDir is an optional directory of extra example scripts. A leading ~ is expanded.
	PresetDir   string `yaml:"preset_dir,omitempty" toml:"preset_dir,omitempty"`
	ShowFPS     bool   `yaml:"show_fps" toml:"show_fps"`
	GridVisible bool   `yaml:"grid_visible" toml:"grid_visible"`
	// Background is the viewport clear color as 0xRRGGBB.
	Background uint32 `yaml:"background" toml:"background"`
}

// WindowPrefs size the main window.
type WindowPrefs struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	Title     string `yaml:"title" toml:"title"`
	TargetFPS int    `yaml:"target_fps" toml:"target_fps"`
	// SidebarWidth is the width of the editor column in pixels.
	SidebarWidth int `yaml:"sidebar_width" toml:"sidebar_width"`
}

// CameraPrefs configure the viewport camera and orbit controls.
type CameraPrefs struct {
	Fovy          float32 `yaml:"fovy" toml:"fovy"`
	EnableDamping bool    `yaml:"enable_damping" toml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor" toml:"damping_factor"`
}

// Default returns default preferences (grid on, FPS overlay off).
func Default() Prefs {
	return Prefs{
		Window: WindowPrefs{
			Width:        1280,
			Height:       800,
			Title:        "Unreal Engine Mesh Creator",
			TargetFPS:    60,
			SidebarWidth: 460,
		},
		Editor: editor.DefaultOptions(),
		Camera: CameraPrefs{
			Fovy:          75,
			EnableDamping: true,
			DampingFactor: 0.25,
		},
		ScriptTimeout: 5 * time.Second,
		GridVisible:   true,
		Background:    0x1a1a1a,
	}
}

// Path returns the preferences path, honoring MESHCREATOR_CONFIG.
func Path() string {
	p := DefaultPath
	if env := os.Getenv(EnvConfigPath); env != "" {
		p = env
	}
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	return p
}

// Load reads preferences from path. Fields missing from the file keep their
// defaults. A missing file returns Default() and no error; an unreadable or
// invalid file returns Default() and the error so the caller can report it.
// MESHCREATOR_PRESETS, when set, overrides PresetDir.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return withEnv(Default()), err
	default:
		if err := unmarshal(path, data, &p); err != nil {
			return withEnv(Default()), fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return withEnv(p.Validate()), nil
}

func withEnv(p Prefs) Prefs {
	if dir := os.Getenv(EnvPresetDir); dir != "" {
		p.PresetDir = dir
	}
	if p.PresetDir != "" {
		if expanded, err := homedir.Expand(p.PresetDir); err == nil {
			p.PresetDir = expanded
		}
	}
	return p
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := marshal(path, p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func unmarshal(path string, data []byte, p *Prefs) error {
	if isTOML(path) {
		return toml.Unmarshal(data, p)
	}
	return yaml.Unmarshal(data, p)
}

func marshal(path string, p Prefs) ([]byte, error) {
	if isTOML(path) {
		return toml.Marshal(p)
	}
	return yaml.Marshal(p)
}

// Validate replaces out-of-range values with defaults.
func (p Prefs) Validate() Prefs {
	d := Default()
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		p.Window.Width, p.Window.Height = d.Window.Width, d.Window.Height
	}
	if p.Window.TargetFPS <= 0 {
		p.Window.TargetFPS = d.Window.TargetFPS
	}
	if p.Window.SidebarWidth <= 0 || p.Window.SidebarWidth >= p.Window.Width {
		p.Window.SidebarWidth = min(d.Window.SidebarWidth, p.Window.Width/2)
	}
	if p.Camera.Fovy <= 0 || p.Camera.Fovy >= 180 {
		p.Camera.Fovy = d.Camera.Fovy
	}
	if p.Camera.DampingFactor <= 0 || p.Camera.DampingFactor > 1 {
		p.Camera.DampingFactor = d.Camera.DampingFactor
	}
	if p.ScriptTimeout <= 0 {
		p.ScriptTimeout = d.ScriptTimeout
	}
	return p
}

// Clone returns a deep copy, so edits to maps such as Editor.ExtraKeys do
// not leak into the original.
func (p Prefs) Clone() Prefs {
	var out Prefs
	if err := copier.CopyWithOption(&out, &p, copier.Option{DeepCopy: true}); err != nil {
		return p
	}
	return out
}
