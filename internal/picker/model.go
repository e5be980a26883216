package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/fzlaunch/internal/index"
	"github.com/verte-zerg/fzlaunch/internal/model"
)

const (
	desktopGlyph    = "  "
	executableGlyph = "  "
	glyphWidth      = 3
)

var (
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var accentCodes = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

// Result is the outcome of one picker session.
type Result struct {
	Index     int    // position in the ranked list, -1 when nothing selected
	Query     string // typed text, used for raw execution when Index is -1
	Cancelled bool
}

// Model implements the Bubble Tea fuzzy picker.
type Model struct {
	cfg    model.Config
	ranked []index.RankedCandidate
	texts  []string

	input   textinput.Model
	matches []Match
	cursor  int
	offset  int

	width  int
	height int

	matchedStyle lipgloss.Style
	currentStyle lipgloss.Style

	result Result
	done   bool
}

// NewModel constructs a picker over the ranked candidate list.
func NewModel(cfg model.Config, ranked []index.RankedCandidate) *Model {
	input := textinput.New()
	input.Prompt = cfg.Prompt
	input.Focus()

	accent := accentCodes[cfg.AccentColor]
	if accent == "" {
		accent = accentCodes["magenta"]
	}

	m := &Model{
		cfg:          cfg,
		ranked:       ranked,
		texts:        index.DisplayStrings(ranked, cfg.MatchGenericName),
		input:        input,
		matchedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		currentStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Reverse(true),
		result:       Result{Index: -1},
	}
	m.refilter()
	return m
}

// Result returns the outcome once the program has finished.
func (m *Model) Result() Result {
	return m.result
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.result = Result{Index: -1, Cancelled: true}
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.result = m.selection()
			m.done = true
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			m.moveCursor(-1)
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN:
			m.moveCursor(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m *Model) selection() Result {
	query := strings.TrimSpace(m.input.Value())
	if len(m.matches) > 0 {
		return Result{Index: m.matches[m.cursor].Pos, Query: query}
	}
	return Result{Index: -1, Query: query}
}

func (m *Model) refilter() {
	m.matches = Filter(m.input.Value(), m.texts, m.cfg.Tiebreak)
	m.cursor = 0
	m.offset = 0
}

func (m *Model) moveCursor(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	m.clampScroll()
}

func (m *Model) listHeight() int {
	h := m.height - 3 // input line, blank, detail line
	if h < 1 {
		h = 10
	}
	return h
}

func (m *Model) clampScroll() {
	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	rows := m.visibleRows()
	detail := footerStyle.Render(m.detailLine())
	inputLine := m.input.View()

	var b strings.Builder
	if m.cfg.Reverse {
		b.WriteString(inputLine)
		b.WriteByte('\n')
		for _, row := range rows {
			b.WriteString(row)
			b.WriteByte('\n')
		}
		b.WriteString(detail)
	} else {
		b.WriteString(detail)
		b.WriteByte('\n')
		for i := len(rows) - 1; i >= 0; i-- {
			b.WriteString(rows[i])
			b.WriteByte('\n')
		}
		b.WriteString(inputLine)
	}
	return b.String()
}

// visibleRows renders the match window, best match first.
func (m *Model) visibleRows() []string {
	visible := m.listHeight()
	end := m.offset + visible
	if end > len(m.matches) {
		end = len(m.matches)
	}
	rows := make([]string, 0, visible)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(m.matches[i], i == m.cursor))
	}
	return rows
}

func (m *Model) renderRow(match Match, current bool) string {
	rc := m.ranked[match.Pos]
	full := rc.Candidate.Name
	if m.cfg.ShowGenericName && rc.Candidate.GenericName != "" {
		full = rc.Candidate.Name + ", " + rc.Candidate.GenericName
	}
	text := full
	if m.width > glyphWidth+1 {
		text = runewidth.Truncate(full, m.width-glyphWidth-1, "…")
	}

	// Matched indexes are byte offsets into the match text; they only apply
	// where the rendered text is byte-identical to it, so anything at or
	// past the truncation mark or a generic-name divergence is dropped.
	limit := len(text)
	if text != full {
		limit = len(text) - len("…")
	}
	if p := sharedPrefixLen(full, index.MatchText(rc.Candidate, m.cfg.MatchGenericName)); p < limit {
		limit = p
	}
	matched := clampMatched(match.MatchedIndexes, limit)

	glyph := executableGlyph
	if rc.Candidate.Kind == model.KindDesktopEntry {
		glyph = desktopGlyph
	}

	base := pendingStyle
	if current {
		base = m.currentStyle
	}
	return base.Render(glyph) + m.highlight(text, matched, base)
}

// sharedPrefixLen returns the length in bytes of the common prefix of a and b.
func sharedPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// clampMatched keeps only the offsets that point into the first limit bytes.
func clampMatched(matched []int, limit int) []int {
	kept := matched[:0:0]
	for _, idx := range matched {
		if idx < limit {
			kept = append(kept, idx)
		}
	}
	return kept
}

// highlight styles the matched runes inside a row.
func (m *Model) highlight(text string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(text)
	}
	matchedSet := make(map[int]struct{}, len(matched))
	for _, idx := range matched {
		matchedSet[idx] = struct{}{}
	}
	var b strings.Builder
	for offset, r := range text {
		if _, ok := matchedSet[offset]; ok {
			b.WriteString(m.matchedStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// detailLine describes the current selection and the match count.
func (m *Model) detailLine() string {
	count := fmt.Sprintf("%d/%d", len(m.matches), len(m.ranked))
	if len(m.matches) == 0 {
		return count
	}
	rc := m.ranked[m.matches[m.cursor].Pos]
	parts := []string{count, rc.Candidate.Name}
	if rc.Candidate.GenericName != "" {
		parts = append(parts, rc.Candidate.GenericName)
	}
	if rc.Candidate.Comment != "" {
		parts = append(parts, rc.Candidate.Comment)
	}
	line := strings.Join(parts, " | ")
	if m.width > 0 {
		line = runewidth.Truncate(line, m.width, "…")
	}
	return line
}
