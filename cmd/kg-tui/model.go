package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/assembly-kg/pkg/query"
	"github.com/dd0wney/assembly-kg/pkg/storage"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

// overview is tab 0; tabs 1-7 show the catalog query with that number
const overview = 0

// maxColumnWidth caps a table column; longer cells are truncated by the table
const maxColumnWidth = 40

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Jump     key.Binding
	Assembly key.Binding
	Rerun    key.Binding
	Enter    key.Binding
	Cancel   key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next query"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev query"),
	),
	Jump: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7"),
		key.WithHelp("0-7", "jump"),
	),
	Assembly: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "assembly"),
	),
	Rerun: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rerun"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Jump, k.Assembly, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Jump},
		{k.Up, k.Down},
		{k.Assembly, k.Enter, k.Cancel, k.Rerun},
		{k.Help, k.Quit},
	}
}

// queryResult is the outcome of one catalog query
type queryResult struct {
	result  *query.ResultSet
	elapsed time.Duration
	err     error
}

// resultsMsg carries a full catalog run for params
type resultsMsg struct {
	params  query.Params
	results map[int]queryResult
}

type model struct {
	ctx     context.Context
	runner  *query.Runner
	stats   storage.Statistics
	params  query.Params
	queries []*query.Query
	results map[int]queryResult
	running bool

	current    int
	table      table.Model
	input      textinput.Model
	editing    bool
	help       help.Model
	keys       keyMap
	width      int
	height     int
	message    string
	messageErr bool
}

func initialModel(ctx context.Context, runner *query.Runner, stats storage.Statistics, params query.Params) model {
	ti := textinput.New()
	ti.Placeholder = "A100"
	ti.Prompt = "Assembly id: "
	ti.CharLimit = 64
	ti.Width = 30

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	return model{
		ctx:     ctx,
		runner:  runner,
		stats:   stats,
		params:  params,
		queries: query.Catalog(),
		results: map[int]queryResult{},
		running: true,
		current: overview,
		table:   t,
		input:   ti,
		help:    help.New(),
		keys:    keys,
	}
}

// runCatalog runs every query for params; a failing query does not stop the others
func runCatalog(ctx context.Context, runner *query.Runner, params query.Params) tea.Cmd {
	return func() tea.Msg {
		results := make(map[int]queryResult, 7)
		for _, q := range query.Catalog() {
			start := time.Now()
			result, err := runner.Run(ctx, q, params)
			results[q.Number] = queryResult{result: result, elapsed: time.Since(start), err: err}
		}
		return resultsMsg{params: params, results: results}
	}
}

func (m model) Init() tea.Cmd {
	return runCatalog(m.ctx, m.runner, m.params)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-16, 5))
		return m, nil

	case resultsMsg:
		// a run for an assembly the user has since left
		if msg.params != m.params {
			return m, nil
		}
		m.results = msg.results
		m.running = false
		m.setMessage(m.summary(), false)
		m.refreshTable()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.show((m.current + 1) % (len(m.queries) + 1))
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.show((m.current + len(m.queries)) % (len(m.queries) + 1))
			return m, nil

		case key.Matches(msg, m.keys.Jump):
			m.show(int(msg.Runes[0] - '0'))
			return m, nil

		case key.Matches(msg, m.keys.Assembly):
			m.editing = true
			m.input.SetValue(m.params.AssemblyID)
			m.input.CursorEnd()
			return m, m.input.Focus()

		case key.Matches(msg, m.keys.Rerun):
			m.running = true
			return m, runCatalog(m.ctx, m.runner, m.params)

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.current != overview {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		id := strings.TrimSpace(m.input.Value())
		if id == "" {
			m.setMessage("Assembly id cannot be empty", true)
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.params = query.Params{AssemblyID: id}
		m.running = true
		return m, runCatalog(m.ctx, m.runner, m.params)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) show(tab int) {
	m.current = tab
	m.refreshTable()
}

func (m *model) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

func (m model) summary() string {
	failed, rows := 0, 0
	for _, r := range m.results {
		if r.err != nil {
			failed++
			continue
		}
		rows += r.result.Count()
	}
	if failed > 0 {
		return fmt.Sprintf("%d of %d queries failed for assembly %s", failed, len(m.results), m.params.AssemblyID)
	}
	return fmt.Sprintf("Ran %d queries for assembly %s: %d rows", len(m.results), m.params.AssemblyID, rows)
}

// refreshTable loads the current query's result into the table. Rows are cleared
// before the columns change so no row is rendered against the wrong columns.
func (m *model) refreshTable() {
	m.table.SetRows(nil)
	if m.current == overview {
		return
	}
	q := m.queries[m.current-1]
	r, ok := m.results[q.Number]
	if !ok || r.err != nil {
		return
	}

	rows := make([]table.Row, r.result.Count())
	widths := make([]int, len(q.Columns))
	for i, c := range q.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for i := range rows {
		rows[i] = r.result.Strings(i)
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], lipgloss.Width(cell))
		}
	}

	columns := make([]table.Column, len(q.Columns))
	for i, c := range q.Columns {
		columns[i] = table.Column{Title: c, Width: min(widths[i]+2, maxColumnWidth)}
	}
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Assembly Knowledge Graph · assembly " + m.params.AssemblyID))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.current == overview {
		s.WriteString(m.renderOverview())
	} else {
		s.WriteString(m.renderQuery(m.queries[m.current-1]))
	}

	if m.editing {
		s.WriteString("\n\n")
		s.WriteString(contentStyle.Render(m.input.View()))
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Overview"}
	for _, q := range m.queries {
		tabs = append(tabs, fmt.Sprintf("Q%d", q.Number))
	}

	rendered := make([]string, len(tabs))
	for i, tab := range tabs {
		if i == m.current {
			rendered[i] = activeTabStyle.Render(tab)
		} else {
			rendered[i] = inactiveTabStyle.Render(tab)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderOverview() string {
	statsContent := fmt.Sprintf(`Graph
─────────────
Triples:     %d
Subjects:    %d
Predicates:  %d
Lookups:     %d`,
		m.stats.TripleCount,
		m.stats.SubjectCount,
		m.stats.PredicateCount,
		m.stats.Lookups,
	)

	var catalog strings.Builder
	catalog.WriteString("Queries\n─────────────")
	for _, q := range m.queries {
		rows := "..."
		if r, ok := m.results[q.Number]; ok && !m.running {
			if r.err != nil {
				rows = "error"
			} else {
				rows = fmt.Sprintf("%d rows", r.result.Count())
			}
		}
		fmt.Fprintf(&catalog, "\n%d. %s (%s)", q.Number, q.Title(m.params), rows)
	}

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(statsContent),
		statsBoxStyle.Render(catalog.String()),
	))
}

func (m model) renderQuery(q *query.Query) string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(fmt.Sprintf("[Query %d] %s", q.Number, q.Title(m.params))))
	s.WriteString("\n\n")

	r, ok := m.results[q.Number]
	switch {
	case !ok || m.running:
		s.WriteString("Running...")
	case r.err != nil:
		s.WriteString(errorStyle.Render(r.err.Error()))
	case r.result.Count() == 0:
		s.WriteString(helpStyle.Render("(no results)"))
	default:
		s.WriteString(m.table.View())
		s.WriteString("\n\n")
		fmt.Fprintf(&s, "%d rows in %s · %s", r.result.Count(), r.elapsed.Round(time.Microsecond), q.Slug)
	}

	return contentStyle.Render(s.String())
}
