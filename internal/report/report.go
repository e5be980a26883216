// Package report renders launch-history summaries.
package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// Row is one line of the usage report.
type Row struct {
	ID       string
	Name     string
	UseCount int
	LastUsed time.Time
}

// Build joins the history mapping with the current candidate set and returns
// rows ordered by use count, then recency, then id. Name falls back to the
// raw id for history entries whose resource no longer exists.
func Build(records map[string]model.HistoryRecord, candidates []model.Candidate, top int) []Row {
	names := make(map[string]string, len(candidates))
	for _, c := range candidates {
		names[c.ID] = c.Name
	}

	rows := make([]Row, 0, len(records))
	for id, rec := range records {
		name := names[id]
		if name == "" {
			name = id
		}
		rows = append(rows, Row{
			ID:       id,
			Name:     name,
			UseCount: rec.UseCount,
			LastUsed: rec.LastUsed,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UseCount != rows[j].UseCount {
			return rows[i].UseCount > rows[j].UseCount
		}
		if !rows[i].LastUsed.Equal(rows[j].LastUsed) {
			return rows[i].LastUsed.After(rows[j].LastUsed)
		}
		return rows[i].ID < rows[j].ID
	})
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}
	return rows
}

// Render formats the rows as an aligned text table.
func Render(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}
	headers := []string{"NAME", "USES", "LAST USED"}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		lastUsed := ""
		if !row.LastUsed.IsZero() {
			lastUsed = row.LastUsed.Local().Format("2006-01-02 15:04")
		}
		cells = append(cells, []string{row.Name, strconv.Itoa(row.UseCount), lastUsed})
	}
	return formatTable(headers, cells, map[int]bool{1: true})
}
