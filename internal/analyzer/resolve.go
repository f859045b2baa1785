package analyzer

import (
	"path"
	"strings"
)

// Outcome classifies what a raw reference mapped to.
type Outcome int

const (
	// Unresolved means no file in the repository matched the reference.
	Unresolved Outcome = iota
	// Resolved means the reference mapped to an existing repository file.
	Resolved
	// External marks a Terraform registry/remote module source that is
	// intentionally not a local file. Distinguished from Unresolved so
	// summaries can report external modules separately from broken links.
	External
)

// Resolution is the result of resolving one raw reference.
type Resolution struct {
	Outcome Outcome
	// Path is the normalized repo-relative target; set only when Resolved.
	Path string
}

// probeExts is the fixed, documented extension probe order. When a reference
// matches several candidates under different extensions, the first extension
// in this list wins; resolution never depends on filesystem enumeration order.
var probeExts = []string{".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".go", ".tf"}

// indexNames are conventional directory entry points probed when a candidate
// names a directory rather than a file.
var indexNames = []string{"__init__.py", "index.js", "main.tf"}

// Resolver maps raw reference strings to repository files. It probes only the
// snapshot of paths it was built with, so resolution is deterministic and
// never touches the filesystem.
type Resolver struct {
	files map[string]bool
	dirs  map[string]bool
}

// NewResolver builds a resolver over the given repo-relative file paths
// (forward slashes). Parent directories are derived from the file set.
func NewResolver(files []string) *Resolver {
	r := &Resolver{
		files: make(map[string]bool, len(files)),
		dirs:  make(map[string]bool),
	}
	for _, f := range files {
		f = strings.TrimPrefix(path.Clean(f), "./")
		if f == "" || f == "." {
			continue
		}
		r.files[f] = true
		for dir := path.Dir(f); dir != "." && dir != "/"; dir = path.Dir(dir) {
			r.dirs[dir] = true
		}
	}
	return r
}

// Resolve turns a raw reference extracted from fromPath into a Resolution.
// Candidate locations are tried in a fixed order, first match wins:
//
//  1. root-absolute references (leading "/") probed from the repo root
//  2. the reference relative to the referencing file's directory
//  3. dotted module form (a.b.c) probed from the source directory, then root
//
// A reference whose normalized target would escape the repository root is
// Unresolved, never a path outside the root. Resolution failure is an
// outcome, not an error.
func (r *Resolver) Resolve(lang Language, fromPath, ref string) Resolution {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Resolution{Outcome: Unresolved}
	}
	if lang == LangTerraform && isRegistrySource(ref) {
		return Resolution{Outcome: External}
	}

	dir := path.Dir(strings.TrimPrefix(path.Clean(fromPath), "./"))
	if dir == "/" {
		dir = "."
	}

	for _, candidate := range r.candidates(dir, ref) {
		if hit, ok := r.probe(candidate); ok {
			if hit == strings.TrimPrefix(path.Clean(fromPath), "./") {
				// Self-references produce no edge.
				return Resolution{Outcome: Unresolved}
			}
			return Resolution{Outcome: Resolved, Path: hit}
		}
	}
	return Resolution{Outcome: Unresolved}
}

// candidates returns normalized candidate base paths in probe order.
func (r *Resolver) candidates(dir, ref string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = strings.TrimPrefix(path.Clean(p), "./")
		if p == "" || p == "." || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	if strings.HasPrefix(ref, "/") {
		add(strings.TrimPrefix(ref, "/"))
		return out
	}
	if joined, ok := joinWithinRoot(dir, ref); ok {
		add(joined)
	}
	if !strings.Contains(ref, "/") && strings.Contains(ref, ".") {
		for _, c := range dottedCandidates(dir, ref) {
			add(c)
		}
	}
	return out
}

// probe checks a single candidate: the exact path first, then each extension
// in probeExts, then conventional index files when the candidate is a
// directory.
func (r *Resolver) probe(candidate string) (string, bool) {
	if r.files[candidate] {
		return candidate, true
	}
	for _, ext := range probeExts {
		if p := candidate + ext; r.files[p] {
			return p, true
		}
	}
	if r.dirs[candidate] {
		for _, name := range indexNames {
			if p := candidate + "/" + name; r.files[p] {
				return p, true
			}
		}
	}
	return "", false
}

// joinWithinRoot joins dir and ref with slash semantics, resolving "." and
// "..". ok is false when the result escapes the repository root.
func joinWithinRoot(dir, ref string) (string, bool) {
	joined := path.Join(dir, ref)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", false
	}
	return joined, true
}

// dottedCandidates expands a dotted module reference (python/java style).
// Leading dots mark relative imports: one dot is the current package, each
// additional dot climbs one directory.
func dottedCandidates(dir, ref string) []string {
	rest := strings.TrimLeft(ref, ".")
	ups := len(ref) - len(rest)
	slashed := strings.ReplaceAll(rest, ".", "/")
	if slashed == "" {
		return nil
	}
	if ups > 0 {
		prefix := strings.Repeat("../", ups-1)
		if c, ok := joinWithinRoot(dir, prefix+slashed); ok {
			return []string{c}
		}
		return nil
	}
	var out []string
	if c, ok := joinWithinRoot(dir, slashed); ok {
		out = append(out, c)
	}
	out = append(out, slashed)
	return out
}

// isRegistrySource reports whether a Terraform module source is a registry or
// remote address. Terraform requires local module paths to start with "./",
// "../" or "/"; anything else addresses a registry, VCS or HTTP source.
func isRegistrySource(src string) bool {
	if strings.HasPrefix(src, "./") || strings.HasPrefix(src, "../") || strings.HasPrefix(src, "/") {
		return false
	}
	if src == "." || src == ".." {
		return false
	}
	return true
}
