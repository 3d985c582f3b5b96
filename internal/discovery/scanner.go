package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner finds learner submission files
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan returns the Go submission files under root. A root that is itself a .go file is
// returned as-is.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("submission path does not exist: %s", root)
	}
	if !info.IsDir() {
		if !isSubmission(info.Name()) {
			return nil, fmt.Errorf("not a Go submission file: %s", root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if isSubmission(d.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// ScanAll scans every root and drops duplicate paths, keeping first-seen order
func (s *Scanner) ScanAll(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var all []string
	for _, root := range roots {
		files, err := s.Scan(root)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				all = append(all, f)
			}
		}
	}
	return all, nil
}

func isSubmission(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}
