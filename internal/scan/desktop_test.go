package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

func writeDesktopFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write desktop file: %v", err)
	}
}

func TestDesktopEntriesParsesFields(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", `[Desktop Entry]
Type=Application
Name=Firefox
GenericName=Web Browser
Comment=Browse the Web
Exec=firefox %u
Icon=firefox
Terminal=false
`)

	entries := DesktopEntries([]string{dir})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ID != "firefox" {
		t.Fatalf("expected id firefox, got %q", entry.ID)
	}
	if entry.Name != "Firefox" || entry.GenericName != "Web Browser" || entry.Comment != "Browse the Web" {
		t.Fatalf("unexpected fields: %+v", entry)
	}
	if entry.Command != "firefox %u" {
		t.Fatalf("expected raw command with field code, got %q", entry.Command)
	}
	if entry.Kind != model.KindDesktopEntry {
		t.Fatalf("expected desktop kind, got %v", entry.Kind)
	}
	if entry.Terminal {
		t.Fatalf("expected Terminal=false")
	}
}

func TestDesktopEntriesDropsHiddenAndIncomplete(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "hidden.desktop", "[Desktop Entry]\nName=Hidden\nExec=hidden\nHidden=true\n")
	writeDesktopFile(t, dir, "nodisplay.desktop", "[Desktop Entry]\nName=NoDisplay\nExec=nodisplay\nNoDisplay=True\n")
	writeDesktopFile(t, dir, "noexec.desktop", "[Desktop Entry]\nName=NoExec\n")
	writeDesktopFile(t, dir, "noname.desktop", "[Desktop Entry]\nExec=noname\n")
	writeDesktopFile(t, dir, "ok.desktop", "[Desktop Entry]\nName=OK\nExec=ok\n")

	entries := DesktopEntries([]string{dir})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "OK" {
		t.Fatalf("expected OK to survive, got %q", entries[0].Name)
	}
}

func TestDesktopEntriesMalformedFileDoesNotAbortScan(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "broken.desktop", "not a desktop entry at all")
	writeDesktopFile(t, dir, "other-group.desktop", "[Some Group]\nName=Nope\nExec=nope\n")
	writeDesktopFile(t, dir, "ok.desktop", "[Desktop Entry]\nName=OK\nExec=ok\n")

	entries := DesktopEntries([]string{dir})
	if len(entries) != 1 || entries[0].Name != "OK" {
		t.Fatalf("expected only OK, got %+v", entries)
	}
}

func TestDesktopEntriesRecursesAndSortsByName(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	writeDesktopFile(t, dir, "zed.desktop", "[Desktop Entry]\nName=Zed\nExec=zed\n")
	writeDesktopFile(t, sub, "alpha.desktop", "[Desktop Entry]\nName=Alpha\nExec=alpha\n")

	entries := DesktopEntries([]string{dir})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Alpha" || entries[1].Name != "Zed" {
		t.Fatalf("unexpected order: %q, %q", entries[0].Name, entries[1].Name)
	}
}

func TestDesktopEntriesDuplicateBasenamesKeepDirOrder(t *testing.T) {
	userDir := t.TempDir()
	systemDir := t.TempDir()
	// The override's name sorts after the system entry's, so a global name
	// sort alone would let the wrong entry win the id collision.
	writeDesktopFile(t, userDir, "app.desktop", "[Desktop Entry]\nName=Zed Override\nExec=user-cmd\n")
	writeDesktopFile(t, systemDir, "app.desktop", "[Desktop Entry]\nName=App\nExec=system-cmd\n")

	entries := DesktopEntries([]string{userDir, systemDir})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "Zed Override" || entries[0].Command != "user-cmd" {
		t.Fatalf("expected higher-precedence directory to win, got %+v", entries[0])
	}
}

func TestDesktopEntriesSkipsUnreadableDir(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "ok.desktop", "[Desktop Entry]\nName=OK\nExec=ok\n")

	entries := DesktopEntries([]string{filepath.Join(dir, "does-not-exist"), dir})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestDesktopEntriesIgnoresLocalizedAndDuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "app.desktop", `[Desktop Entry]
Name=App
Name[de]=Anwendung
Name=Override
Exec=app
`)

	entries := DesktopEntries([]string{dir})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "App" {
		t.Fatalf("expected first default Name to win, got %q", entries[0].Name)
	}
}

func TestParseLenientBool(t *testing.T) {
	for _, value := range []string{"true", "True", "TRUE", "yes", "1", "on"} {
		if !parseLenientBool(value) {
			t.Fatalf("expected %q to parse as true", value)
		}
	}
	for _, value := range []string{"", "false", "no", "0", "garbage"} {
		if parseLenientBool(value) {
			t.Fatalf("expected %q to parse as false", value)
		}
	}
}
