// Package model defines shared data structures.
package model

import "time"

// Kind discriminates where a candidate came from.
type Kind int

const (
	// KindDesktopEntry marks a candidate parsed from a .desktop file.
	KindDesktopEntry Kind = iota
	// KindExecutable marks a candidate found on $PATH.
	KindExecutable
	// KindRawCommand marks a candidate synthesized from typed free text.
	KindRawCommand
)

// Candidate is a single launchable entry.
type Candidate struct {
	ID          string
	Name        string
	GenericName string
	Comment     string
	Command     string
	Path        string
	Terminal    bool
	Kind        Kind
}

// RawCommand builds a pass-through candidate for free typed text.
func RawCommand(text string) Candidate {
	return Candidate{
		ID:      text,
		Name:    text,
		Command: text,
		Kind:    KindRawCommand,
	}
}

// HistoryRecord tracks per-candidate usage, keyed by Candidate.ID.
type HistoryRecord struct {
	UseCount int       `toml:"use_count"`
	LastUsed time.Time `toml:"last_used"`
}

// SortMode selects how the candidate list is ordered before matching.
type SortMode int

const (
	// SortHistory orders by use count, then recency, then scan order.
	SortHistory SortMode = iota
	// SortNone preserves scan order.
	SortNone
	// SortMatcher defers all ordering to the fuzzy match score.
	SortMatcher
)

// Tiebreak selects how equal fuzzy scores are resolved in the picker.
type Tiebreak int

const (
	// TiebreakScore keeps the matcher's order for equal scores.
	TiebreakScore Tiebreak = iota
	// TiebreakIndex prefers the candidate ranked earlier.
	TiebreakIndex
	// TiebreakBegin prefers the match closest to the beginning.
	TiebreakBegin
)

// Config defines launcher settings after flag/file merging.
type Config struct {
	MatchGenericName bool
	ShowGenericName  bool
	Sort             SortMode
	Tiebreak         Tiebreak
	Prompt           string
	AccentColor      string
	Reverse          bool
	CommandPrefix    string
	TerminalCommand  string
	RecordRaw        bool
}
