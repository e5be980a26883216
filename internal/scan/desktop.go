// Package scan enumerates launchable resources from the filesystem.
package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// DesktopEntries walks the given application directories and returns one
// candidate per usable .desktop file. Directories are visited in precedence
// order and duplicate ids collapse to the first found, so a data-home entry
// shadows a system entry with the same basename regardless of how their
// names sort. Unreadable directories and malformed files are skipped; the
// scan itself never fails.
func DesktopEntries(dirs []string) []model.Candidate {
	seen := map[string]struct{}{}
	var entries []model.Candidate
	for _, dir := range dirs {
		for _, entry := range desktopEntryDir(dir) {
			if _, ok := seen[entry.ID]; ok {
				continue
			}
			seen[entry.ID] = struct{}{}
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func desktopEntryDir(dir string) []model.Candidate {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var entries []model.Candidate
	for _, item := range items {
		path := filepath.Join(dir, item.Name())
		if item.IsDir() {
			entries = append(entries, desktopEntryDir(path)...)
			continue
		}
		if !strings.HasSuffix(item.Name(), ".desktop") {
			continue
		}
		entry, ok := parseDesktopFile(path)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseDesktopFile reads the [Desktop Entry] group of a desktop file.
// Hidden entries and entries without a name or command yield no candidate.
func parseDesktopFile(path string) (model.Candidate, bool) {
	file, err := os.Open(path)
	if err != nil {
		return model.Candidate{}, false
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only entry file.
			_ = cerr
		}
	}()

	keys, ok := parseKeyFile(file)
	if !ok {
		return model.Candidate{}, false
	}
	if parseLenientBool(keys["NoDisplay"]) || parseLenientBool(keys["Hidden"]) {
		return model.Candidate{}, false
	}
	name := keys["Name"]
	exec := keys["Exec"]
	if name == "" || exec == "" {
		return model.Candidate{}, false
	}

	return model.Candidate{
		ID:          strings.TrimSuffix(filepath.Base(path), ".desktop"),
		Name:        name,
		GenericName: keys["GenericName"],
		Comment:     keys["Comment"],
		Command:     exec,
		Path:        path,
		Terminal:    parseLenientBool(keys["Terminal"]),
		Kind:        model.KindDesktopEntry,
	}, true
}

// parseKeyFile collects the key/value pairs of the [Desktop Entry] group.
// Unknown keys are kept but ignored by the caller; lines that are not
// key=value pairs are skipped rather than treated as errors.
func parseKeyFile(file *os.File) (map[string]string, bool) {
	keys := map[string]string{}
	inGroup := false
	sawGroup := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inGroup = line == "[Desktop Entry]"
			if inGroup {
				sawGroup = true
			}
			continue
		}
		if !inGroup {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if strings.Contains(key, "[") {
			// Localized variant, e.g. Name[de]; only the default key is used.
			continue
		}
		if _, dup := keys[key]; dup {
			continue
		}
		keys[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, false
	}
	return keys, sawGroup
}

// parseLenientBool accepts the common spellings of truth found in desktop
// files. Anything unrecognized is false.
func parseLenientBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true
	default:
		return false
	}
}
