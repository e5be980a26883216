// Package launch turns a selected candidate into a detached process.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"syscall"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// Desktop-entry field codes (%f, %U, ...) are stripped, never expanded: a
// bare launcher has no file or URL context to substitute.
var fieldCodeRe = regexp.MustCompile(`\s*%\w`)

const fallbackTerminal = "alacritty -e"

// StripFieldCodes removes desktop-entry field codes from a command string.
func StripFieldCodes(command string) string {
	return fieldCodeRe.ReplaceAllString(command, "")
}

// Invocation builds the final shell invocation for a candidate: field codes
// stripped for desktop entries, Terminal=true entries wrapped in a terminal
// emulator command, and the configured command prefix prepended last.
func Invocation(c model.Candidate, cfg model.Config) string {
	command := strings.TrimSpace(c.Command)
	if c.Kind == model.KindDesktopEntry {
		command = strings.TrimSpace(StripFieldCodes(command))
		if c.Terminal {
			command = terminalCommand(cfg) + " " + shellQuote(command)
		}
	}
	if cfg.CommandPrefix != "" {
		command = cfg.CommandPrefix + " " + command
	}
	return command
}

// terminalCommand picks the wrapper for Terminal=true entries: the
// configured command, else "$TERM -e", else a fallback emulator.
func terminalCommand(cfg model.Config) string {
	if cfg.TerminalCommand != "" {
		return cfg.TerminalCommand
	}
	if term := os.Getenv("TERM"); term != "" {
		return term + " -e"
	}
	return fallbackTerminal
}

// shellQuote single-quotes a string for use as one sh word when needed.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$&|;<>()*?[]#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Run starts the candidate's invocation as "sh -c" in a new session with
// stdio detached, and releases the child immediately: the launcher never
// waits for or supervises what it starts. Only a failure to create the
// process is reported.
func Run(c model.Candidate, cfg model.Config) error {
	invocation := Invocation(c, cfg)
	cmd := exec.Command("sh", "-c", invocation)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", invocation, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release %q: %w", invocation, err)
	}
	return nil
}
