// Package presets provides the example scripts loaded by the preset
// buttons: four built-ins embedded in the binary plus an optional user
// directory read from disk.
package presets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// ManifestFile lists the presets of a directory.
const ManifestFile = "presets.yaml"

// DefaultName is the preset shown when the editor starts.
const DefaultName = "cube"

var (
	// ErrNotFound is returned for a name no preset answers to.
	ErrNotFound = errors.New("preset not found")
	// ErrSuperseded is passed to an async load callback when a newer load
	// was requested before it completed. The result must be discarded.
	ErrSuperseded = errors.New("preset load superseded")
)

//go:embed scripts
var builtinFS embed.FS

// Preset is one manifest entry.
type Preset struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title,omitempty"`
	File  string `yaml:"file"`
	// Builtin is true for presets embedded in the binary.
	Builtin bool `yaml:"-"`
}

// Loader resolves preset names to source text. Loads are sequenced: every
// request takes a ticket and only the latest ticket may deliver.
type Loader struct {
	dir     string
	builtin []Preset
	sources map[string]string
	seq     atomic.Uint64
	// readFile reads user preset scripts.
	readFile func(string) ([]byte, error)
}

// NewLoader reads the embedded presets. dir, if not empty, is a directory
// holding extra presets and a presets.yaml manifest; it is read lazily on
// each load so edits show up without a restart.
func NewLoader(dir string) (*Loader, error) {
	data, err := builtinFS.ReadFile("scripts/" + ManifestFile)
	if err != nil {
		return nil, err
	}
	var list []Preset
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing builtin manifest: %w", err)
	}
	l := &Loader{dir: dir, sources: make(map[string]string, len(list)), readFile: os.ReadFile}
	for _, p := range list {
		src, err := builtinFS.ReadFile("scripts/" + p.File)
		if err != nil {
			return nil, fmt.Errorf("builtin preset %s: %w", p.Name, err)
		}
		p.Builtin = true
		l.builtin = append(l.builtin, p)
		l.sources[p.Name] = string(src)
	}
	return l, nil
}

// Builtins returns the embedded presets in button order.
func (l *Loader) Builtins() []Preset {
	return append([]Preset(nil), l.builtin...)
}

// List returns the built-ins followed by the user directory's presets.
// User presets shadowed by a built-in name are skipped.
func (l *Loader) List() ([]Preset, error) {
	out := l.Builtins()
	user, err := l.userManifest()
	if err != nil {
		return out, err
	}
	for _, p := range user {
		if _, ok := l.sources[p.Name]; ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// IsBuiltin reports whether name is an embedded preset.
func (l *Loader) IsBuiltin(name string) bool {
	_, ok := l.sources[name]
	return ok
}

// Builtin returns an embedded preset's source without touching the disk.
func (l *Loader) Builtin(name string) (string, error) {
	src, ok := l.sources[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return src, nil
}

// Load resolves name from the built-ins, then the user directory.
func (l *Loader) Load(ctx context.Context, name string) (string, error) {
	if src, ok := l.sources[name]; ok {
		return src, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if l.dir == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	user, err := l.userManifest()
	if err != nil {
		return "", err
	}
	for _, p := range user {
		if p.Name != name {
			continue
		}
		data, err := l.readFile(filepath.Join(l.dir, filepath.Clean(p.File)))
		if err != nil {
			return "", fmt.Errorf("reading preset %s: %w", name, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Begin issues a new request ticket, superseding all earlier ones.
func (l *Loader) Begin() uint64 {
	return l.seq.Add(1)
}

// Current reports whether ticket is still the latest request.
func (l *Loader) Current(ticket uint64) bool {
	return l.seq.Load() == ticket
}

// LoadAsync resolves name in a new goroutine and calls done with the
// result. If another Begin or LoadAsync happened meanwhile, done receives
// ErrSuperseded instead of the source. done runs on the loader goroutine.
func (l *Loader) LoadAsync(ctx context.Context, name string, done func(name, src string, err error)) uint64 {
	ticket := l.Begin()
	go func() {
		src, err := l.Load(ctx, name)
		if !l.Current(ticket) {
			done(name, "", ErrSuperseded)
			return
		}
		done(name, src, err)
	}()
	return ticket
}

func (l *Loader) userManifest() ([]Preset, error) {
	if l.dir == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(l.dir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var list []Preset
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	out := list[:0]
	for _, p := range list {
		if p.Name == "" || p.File == "" || strings.Contains(p.File, "..") || filepath.IsAbs(p.File) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
