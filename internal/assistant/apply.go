package assistant

import (
	"fmt"

	"reposcope/internal/safeio"
)

// ApplyEdits writes each edit into the checkout. Writes are confined to the
// checkout root by the SafeFS. Returns the repo-relative paths written before
// the first failure, if any.
func ApplyEdits(fsys *safeio.SafeFS, edits []FileEdit) ([]string, error) {
	applied := make([]string, 0, len(edits))
	for _, e := range edits {
		if err := fsys.SafeWriteFile(e.Path, []byte(e.Content)); err != nil {
			return applied, fmt.Errorf("apply %s: %w", e.Path, err)
		}
		applied = append(applied, e.Path)
	}
	return applied, nil
}
