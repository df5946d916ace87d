package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/rota/internal/config"
	"github.com/papapumpkin/rota/internal/slotfit"
	"github.com/papapumpkin/rota/internal/timetable"
	"github.com/papapumpkin/rota/internal/tsv"
	"github.com/papapumpkin/rota/internal/verify"
)

// row is one rendered timetable line plus the identity used to match
// verify failures back to it.
type row struct {
	id      string
	time    string
	labels  string
	flagged bool
}

// Model is the root bubbletea model for the viewer. It holds the parsed
// timetable so sort, verify and fit act on the real thing, plus a
// rendered row snapshot for the viewport.
type Model struct {
	Path      string
	SlotsPath string

	cfg    config.Config
	tt     *timetable.Timetable
	format timetable.Format
	rows   []row

	cursor   int
	viewport viewport.Model
	keys     KeyMap
	width    int
	height   int
	ready    bool

	verified *verify.Result
	status   string
	loadErr  error
}

// NewModel builds a viewer over the timetable at path. The file is read
// immediately so the first frame already has rows.
func NewModel(path, slotsPath string, cfg config.Config) Model {
	m := Model{
		Path:      path,
		SlotsPath: slotsPath,
		cfg:       cfg,
		keys:      DefaultKeyMap(),
	}
	m.reload()
	return m
}

// Init implements tea.Model. The file is read eagerly in NewModel, so
// there is no startup command.
func (m Model) Init() tea.Cmd { return nil }

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, 1)
			m.ready = true
		}
		m.resize()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncViewport()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.syncViewport()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.syncViewport()

	case key.Matches(msg, m.keys.Bottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		m.syncViewport()

	case key.Matches(msg, m.keys.Sort):
		m.sortRows()

	case key.Matches(msg, m.keys.Verify):
		m.runChecks()

	case key.Matches(msg, m.keys.Fit):
		m.previewFit()

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		if m.loadErr == nil {
			m.status = "reloaded"
		}
		m.resize()
	}
	return m, nil
}

// reload reads the file again, dropping verify state and previews.
func (m *Model) reload() {
	m.verified = nil
	m.status = ""
	m.cursor = 0

	file, err := os.Open(m.Path)
	if err != nil {
		m.loadErr = err
		m.tt = nil
		m.rows = nil
		return
	}
	defer file.Close()

	tt, f, err := tsv.Parse(file, m.cfg.Format)
	if err != nil {
		m.loadErr = err
		m.tt = nil
		m.rows = nil
		return
	}
	m.loadErr = nil
	m.tt = tt
	m.format = f
	m.rebuildRows()
}

func (m *Model) sortRows() {
	if m.tt == nil {
		return
	}
	m.tt.Sort()
	m.rebuildRows()
	m.status = "sorted"
	m.resize()
}

// runChecks verifies the table in place and flags the offending rows.
func (m *Model) runChecks() {
	if m.tt == nil {
		return
	}
	keys := m.cfg.CountLabels
	if len(keys) == 0 {
		keys = m.tt.Labels().Keys()
	}
	res := verify.Run(m.tt,
		verify.Dimensions(),
		verify.LabelText(tsv.Separator),
		verify.Conflicts(),
		verify.Counts(keys...),
	)
	m.verified = &res
	m.flagRows()
	m.syncViewport()
	m.resize()
}

// previewFit fits a copy of the table against the manifest, so the file
// and the in-memory original stay untouched on capacity errors.
func (m *Model) previewFit() {
	if m.tt == nil || m.SlotsPath == "" {
		return
	}
	slots, err := slotfit.LoadFile(m.SlotsPath, m.format)
	if err != nil {
		m.status = err.Error()
		m.resize()
		return
	}

	preview, err := m.tt.Add(timetable.Rel(0))
	if err != nil {
		m.status = err.Error()
		m.resize()
		return
	}
	if err := slotfit.Fit(preview, slots); err != nil {
		m.status = err.Error()
		m.resize()
		return
	}

	m.tt = preview
	m.verified = nil
	m.rebuildRows()
	m.status = fmt.Sprintf("fit preview: %d group(s) placed, r restores the file", slotfit.Groups(preview))
	m.resize()
}

// renderFormat resolves the format rows display with.
func (m *Model) renderFormat() timetable.Format {
	if f, ok := timetable.ParseSelector(m.cfg.OutFormat); ok {
		return f
	}
	return m.format
}

// rebuildRows re-renders the snapshot shown in the viewport.
func (m *Model) rebuildRows() {
	f := m.renderFormat()
	rows := make([]row, 0, m.tt.Len())
	for _, e := range m.tt.Events() {
		names := make([]string, 0, len(e.Data))
		for _, l := range e.Data {
			names = append(names, l.Name)
		}
		rows = append(rows, row{
			id:     e.String(),
			time:   f.Render(e.Time),
			labels: strings.Join(names, "  "),
		})
	}
	m.rows = rows
	if m.cursor >= len(m.rows) && len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}
	m.flagRows()
	m.syncViewport()
}

// flagRows marks the rows named by structured verify failures.
func (m *Model) flagRows() {
	failing := map[string]bool{}
	if m.verified != nil {
		for _, chk := range m.verified.Checks {
			if id, ok := failureRow(chk.Err); ok {
				failing[id] = true
			}
		}
	}
	for i := range m.rows {
		m.rows[i].flagged = failing[m.rows[i].id]
	}
}

// failureRow extracts the offending event from a structured check error.
func failureRow(err error) (string, bool) {
	var dim *verify.DimensionError
	if errors.As(err, &dim) {
		return dim.Event.String(), true
	}
	var sep *verify.SeparatorError
	if errors.As(err, &sep) {
		return sep.Event.String(), true
	}
	var con *verify.ConflictError
	if errors.As(err, &con) {
		return con.Event.String(), true
	}
	return "", false
}

// resize recomputes the viewport height around the chrome.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	vh := m.height - m.chromeHeight()
	if vh < 1 {
		vh = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vh
	m.syncViewport()
}

// chromeHeight counts the lines everything but the rows occupies.
func (m Model) chromeHeight() int {
	h := 1 + 2 // status bar + footer with its border
	if m.verified != nil {
		h += len(m.verified.Checks)
	}
	if m.status != "" {
		h++
	}
	return h
}

// syncViewport pushes the rendered rows into the viewport and keeps the
// cursor visible.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderRows())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// View renders the full viewer.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	sections := []string{m.renderStatusBar(), m.viewport.View()}
	if m.verified != nil {
		sections = append(sections, m.renderChecks())
	}
	if m.status != "" {
		sections = append(sections, styleStatusLine.Render(" "+m.status))
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatusBar() string {
	state := styleStatusDim.Render("unverified")
	if m.verified != nil {
		if m.verified.Passed {
			state = styleVerifyPass.Render(iconPass + " verified")
		} else {
			failing := 0
			for _, chk := range m.verified.Checks {
				if !chk.Passed {
					failing++
				}
			}
			state = styleVerifyFail.Render(fmt.Sprintf("%s %d failing", iconFail, failing))
		}
	}

	left := styleStatusLabel.Render("rota") + " " + styleStatusValue.Render(filepath.Base(m.Path))
	var middle string
	if m.tt == nil {
		middle = styleVerifyFail.Render("unreadable")
	} else {
		middle = styleStatusValue.Render(fmt.Sprintf("%s · %d rows · %d labels",
			m.tt.Kind(), m.tt.Len(), m.tt.Labels().Len()))
	}
	sep := styleStatusDim.Render(" │ ")
	return styleStatusBar.Width(m.width).Render(left + sep + middle + sep + state)
}

func (m Model) renderRows() string {
	if m.loadErr != nil {
		return styleRowFlagged.Render("  " + m.loadErr.Error())
	}
	if len(m.rows) == 0 {
		return styleStatusDim.Render("  (empty timetable)")
	}

	var b strings.Builder
	for i, r := range m.rows {
		indicator := "  "
		style := styleRowNormal
		if r.flagged {
			style = styleRowFlagged
		}
		if i == m.cursor {
			indicator = styleSelectionIndicator.Render(selectionIndicator) + " "
			if !r.flagged {
				style = styleRowSelected
			}
		}
		b.WriteString(indicator + style.Render(fmt.Sprintf("%-18s %s", r.time, r.labels)))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderChecks() string {
	var b strings.Builder
	for i, chk := range m.verified.Checks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if chk.Passed {
			b.WriteString(" " + styleVerifyPass.Render(iconPass+" "+chk.Name))
		} else {
			b.WriteString(" " + styleVerifyFail.Render(iconFail+" "+chk.Name+": "+chk.Err.Error()))
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var parts []string
	for _, b := range FooterBindings(m.keys, m.SlotsPath != "") {
		help := b.Help()
		parts = append(parts, styleFooterKey.Render(help.Key)+styleFooterSep.Render(":")+styleFooterDesc.Render(help.Desc))
	}
	return styleFooter.Width(m.width).Render(strings.Join(parts, styleFooterSep.Render("  ")))
}
