package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileVisit carries per-entry metadata to user callbacks.
type FileVisit struct {
	// Repo-relative path using forward slashes (e.g., "modules/vpc/main.tf").
	Path string
	// Absolute filesystem path.
	AbsPath string
	// True when the entry is a directory.
	IsDir bool
	// Lowercased extension (e.g., ".tf", ".py"); empty for dirs or no-ext files.
	Ext string
	// File size in bytes; 0 for dirs or when stat fails.
	Size int64
}

// VisitFunc is invoked for every visited entry.
// Use a closure to accumulate custom stats (e.g., extension counts).
type VisitFunc func(f FileVisit)

var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"venv":         true,
	".venv":        true,
	"target":       true,
	"build":        true,
	".next":        true,
	".cache":       true,
	".terraform":   true,
}

// Walk traverses root depth-first, skipping VCS and dependency directories,
// and invokes cb for each remaining entry (dirs included, binaries excluded).
// Per-entry stat errors are tolerated; the walk itself only fails when the
// root cannot be read.
func Walk(root string, cb VisitFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			base := filepath.Base(path)
			if path != root && (skipDirs[base] || strings.HasPrefix(base, ".")) {
				return filepath.SkipDir
			}
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		ext := strings.ToLower(filepath.Ext(rel))

		if !d.IsDir() && IsBinaryPath(rel) {
			return nil
		}

		size := int64(0)
		if !d.IsDir() {
			if fi, e := os.Stat(path); e == nil {
				size = fi.Size()
			}
		}
		if cb != nil {
			cb(FileVisit{Path: rel, AbsPath: path, IsDir: d.IsDir(), Ext: ext, Size: size})
		}
		return nil
	})
}

// IsBinaryPath reports whether the path's extension marks a non-text file
// that should never be pattern-matched.
func IsBinaryPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	// images
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".bmp", ".tiff", ".svg":
		return true
	// video
	case ".mp4", ".m4v", ".mov", ".mkv", ".webm", ".avi":
		return true
	// audio
	case ".mp3", ".wav", ".ogg", ".flac", ".m4a":
		return true
	// archives / binaries / fonts
	case ".pdf", ".zip", ".jar", ".gz", ".tgz", ".bz2", ".7z", ".exe", ".dll", ".dylib", ".so", ".woff", ".woff2":
		return true
	}
	return false
}
