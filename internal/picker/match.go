// Package picker provides the Bubble Tea fuzzy selection interface.
package picker

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// Match points at one list position that survived the query filter.
type Match struct {
	Pos            int // position in the ranked candidate list
	MatchedIndexes []int
	score          int
}

// Filter applies the fuzzy query to the display strings and returns the
// surviving positions in result order. An empty query keeps the full list in
// its incoming (ranked) order. Equal scores are resolved by the tie-break
// rule and finally by list position, so ordering is deterministic.
func Filter(query string, texts []string, tiebreak model.Tiebreak) []Match {
	if query == "" {
		matches := make([]Match, len(texts))
		for i := range texts {
			matches[i] = Match{Pos: i}
		}
		return matches
	}

	found := fuzzy.Find(query, texts)
	matches := make([]Match, 0, len(found))
	for _, f := range found {
		matches = append(matches, Match{
			Pos:            f.Index,
			MatchedIndexes: f.MatchedIndexes,
			score:          f.Score,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		if tiebreak == model.TiebreakBegin {
			bi, bj := matchBegin(matches[i]), matchBegin(matches[j])
			if bi != bj {
				return bi < bj
			}
		}
		return matches[i].Pos < matches[j].Pos
	})
	return matches
}

func matchBegin(m Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[0]
}
