package scan

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// Executables enumerates the given $PATH directories in order and returns one
// candidate per executable basename. Duplicate basenames across directories
// collapse to the first found, matching the shell's own resolution order.
// Unreadable directories are skipped.
func Executables(dirs []string) []model.Candidate {
	seen := map[string]struct{}{}
	var result []model.Candidate
	for _, dir := range dirs {
		for _, entry := range executableDir(dir) {
			if _, ok := seen[entry.ID]; ok {
				continue
			}
			seen[entry.ID] = struct{}{}
			result = append(result, entry)
		}
	}
	return result
}

func executableDir(dir string) []model.Candidate {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var entries []model.Candidate
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		path := filepath.Join(dir, item.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			continue
		}
		name := item.Name()
		entries = append(entries, model.Candidate{
			ID:      name,
			Name:    name,
			Command: name,
			Path:    path,
			Kind:    model.KindExecutable,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
