// Package discovery resolves logical dataset names to files on disk.
//
// The buyer CSVs carry Korean filenames, and macOS stores those in
// decomposed form (NFD) while the configuration holds them composed (NFC).
// All comparisons therefore go through NFC normalization.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Finder locates dataset files under a set of search directories.
type Finder struct {
	dirs []string
}

// NewFinder creates a finder over the given directories, tried in order.
func NewFinder(dirs []string) *Finder {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return &Finder{dirs: dirs}
}

// Resolve returns the path of the first file matching the given filename.
// It first checks each search directory for the exact name, then falls back
// to a recursive walk comparing NFC-normalized base names. The second return
// is false when no file was found; a missing file is not an error.
func (f *Finder) Resolve(filename string) (string, bool) {
	for _, dir := range f.dirs {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	target := norm.NFC.String(filename)
	for _, dir := range f.dirs {
		if path, ok := findByWalk(dir, target); ok {
			return path, true
		}
	}

	return "", false
}

// findByWalk searches dir recursively for a CSV whose NFC-normalized base
// name equals target.
func findByWalk(dir, target string) (string, bool) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		if norm.NFC.String(filepath.Base(path)) == target {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil || found == "" {
		return "", false
	}
	return found, true
}
