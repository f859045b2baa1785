// Package gitrepo manages the lifecycle of temporary repository checkouts.
package gitrepo

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
)

// Clone clones url into dest via the git CLI. An existing checkout at dest is
// removed first so repeated runs never analyze a stale tree. Depth-1 is
// enough: analysis only reads the working tree.
func Clone(ctx context.Context, url, dest string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("gitrepo: repository url is required")
	}
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("gitrepo: git executable not found: %w", err)
	}
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("gitrepo: cannot clear %s: %w", dest, err)
	}

	log.Printf("gitrepo: cloning %s into %s", url, dest)
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dest)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// Clone failures abort the whole analysis; include git's own
		// message so the user sees why (auth, missing repo, network).
		msg := strings.TrimSpace(string(out))
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return fmt.Errorf("gitrepo: clone %s failed: %v: %s", url, err, msg)
	}
	return nil
}

// Cleanup removes a checkout directory. Missing directories are fine.
func Cleanup(dest string) {
	if dest == "" {
		return
	}
	if err := os.RemoveAll(dest); err != nil {
		log.Printf("gitrepo: cleanup %s: %v", dest, err)
	}
}
