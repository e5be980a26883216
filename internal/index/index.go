// Package index merges raw scan results into a unique, ranked candidate list.
package index

import (
	"sort"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// RankedCandidate pairs a candidate with its usage data and final position.
// Rebuilt on every run, never persisted.
type RankedCandidate struct {
	Candidate model.Candidate
	UseCount  int
	LastUsed  int64 // unix nanoseconds, zero when never used
}

// Merge deduplicates the raw scan results by candidate id. Desktop entries
// are inserted first so their curated name and command win over a bare
// executable with the same id; an executable still surfaces when no desktop
// entry claims its id. Insertion order is preserved.
func Merge(desktop, executables []model.Candidate) []model.Candidate {
	seen := make(map[string]struct{}, len(desktop)+len(executables))
	merged := make([]model.Candidate, 0, len(desktop)+len(executables))
	for _, list := range [][]model.Candidate{desktop, executables} {
		for _, c := range list {
			if c.ID == "" || c.Command == "" {
				continue
			}
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}
			merged = append(merged, c)
		}
	}
	return merged
}

// Rank joins candidates with their history records and orders them by the
// requested mode. SortHistory orders by descending use count, then most
// recent use, with scan order as the stable tie-break, so candidates with no
// history keep their scan order relative to each other. SortNone and
// SortMatcher leave scan order untouched; in the latter case the picker's
// match score decides everything.
func Rank(candidates []model.Candidate, history map[string]model.HistoryRecord, mode model.SortMode) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		rc := RankedCandidate{Candidate: c}
		if rec, ok := history[c.ID]; ok {
			rc.UseCount = rec.UseCount
			if !rec.LastUsed.IsZero() {
				rc.LastUsed = rec.LastUsed.UnixNano()
			}
		}
		ranked = append(ranked, rc)
	}
	if mode == model.SortHistory {
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].UseCount != ranked[j].UseCount {
				return ranked[i].UseCount > ranked[j].UseCount
			}
			return ranked[i].LastUsed > ranked[j].LastUsed
		})
	}
	return ranked
}

// DisplayStrings returns the text handed to the fuzzy matcher, one string
// per ranked candidate in the same order. The position of each string maps
// back to its candidate, so a selected index resolves unambiguously even
// when two candidates display identical text.
func DisplayStrings(ranked []RankedCandidate, matchGenericName bool) []string {
	texts := make([]string, len(ranked))
	for i, rc := range ranked {
		texts[i] = MatchText(rc.Candidate, matchGenericName)
	}
	return texts
}

// MatchText builds the matchable text for one candidate.
func MatchText(c model.Candidate, matchGenericName bool) string {
	if matchGenericName && c.Kind == model.KindDesktopEntry && c.GenericName != "" {
		return c.Name + ", " + c.GenericName
	}
	return c.Name
}
