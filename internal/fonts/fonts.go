// Package fonts locates TTF/OTF files for the editor and sidebar text.
package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// MonospaceFamilies are tried in order by FindMonospace.
var MonospaceFamilies = []string{"JetBrainsMono", "FiraCode", "SourceCodePro", "DejaVuSansMono", "LiberationMono", "Mono"}

// BaseDirs returns candidate font directories: the bundled assets
// (relative to the process cwd) first, then the user and system font
// directories. Missing directories are skipped when scanning.
func BaseDirs() []string {
	dirs := []string{"assets/fonts", "../../assets/fonts"}
	for _, d := range []string{"~/.fonts", "~/.local/share/fonts", "~/Library/Fonts"} {
		if p, err := homedir.Expand(d); err == nil {
			dirs = append(dirs, p)
		}
	}
	return append(dirs, "/usr/share/fonts", "/Library/Fonts", `C:\Windows\Fonts`)
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Find searches dirs in order for a font file whose path matches search,
// a family name like "Fira Code" or a partial path like "Inter-Regular".
// It returns the full path of the first directory with a match, preferring
// a "Regular" file, or os.ErrNotExist.
func Find(dirs []string, search string) (string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", os.ErrNotExist
	}
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil || len(list) == 0 {
			continue
		}
		var matches []string
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, rel)
			}
		}
		if len(matches) == 0 {
			continue
		}
		best := matches[0]
		for _, m := range matches {
			if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
				best = m
				break
			}
		}
		return filepath.Join(base, filepath.FromSlash(best)), nil
	}
	return "", os.ErrNotExist
}

// FindFont is Find over BaseDirs.
func FindFont(search string) (string, error) {
	return Find(BaseDirs(), search)
}

// FindMonospace returns the first MonospaceFamilies font found in dirs.
func FindMonospace(dirs []string) (string, error) {
	for _, family := range MonospaceFamilies {
		if p, err := Find(dirs, family); err == nil {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}
