package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/assembly-kg/pkg/fixture"
	"github.com/dd0wney/assembly-kg/pkg/query"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	store, err := fixture.Build(fixture.Sample())
	require.NoError(t, err)
	store.Freeze()

	ctx := context.Background()
	m := initialModel(ctx, query.NewRunner(store, query.RunnerConfig{}), store.GetStatistics(),
		query.Params{AssemblyID: "A100"})

	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	return update(t, m, m.Init()())
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialRun(t *testing.T) {
	m := newTestModel(t)

	assert.False(t, m.running)
	assert.Len(t, m.results, 7)
	assert.Equal(t, "Ran 7 queries for assembly A100: 16 rows", m.message)

	view := m.View()
	assert.Contains(t, view, "Triples:     58")
	assert.Contains(t, view, "4. Total cost (USD) of assembly A100 (1 rows)")
}

func TestTabNavigation(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.current)
	assert.Len(t, m.table.Rows(), 4)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 7, m.current)
	assert.Len(t, m.table.Columns(), 3)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, overview, m.current)
	assert.Empty(t, m.table.Rows())
}

func TestJumpToQuery(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, runes("6"))
	require.Equal(t, 6, m.current)
	assert.Equal(t, []string{"Aluminum", "Aluminum Bracket BR25", "12.5"}, []string(m.table.Rows()[0]))

	view := m.View()
	assert.Contains(t, view, "[Query 6] Cheapest part per material")
	assert.Contains(t, view, "O-Ring OR12")
	assert.Contains(t, view, "2 rows in")
}

func TestChangeAssembly(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, runes("3"))

	m = update(t, m, runes("a"))
	require.True(t, m.editing)
	assert.Equal(t, "A100", m.input.Value())

	m.input.SetValue("Z999")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, cmd)
	assert.False(t, m.editing)
	assert.True(t, m.running)
	assert.Contains(t, m.View(), "Running...")

	m = update(t, m, cmd())
	assert.Equal(t, "Z999", m.params.AssemblyID)
	assert.Contains(t, m.View(), "(no results)")
	assert.Contains(t, m.View(), "Total weight of assembly Z999")
}

func TestStaleResultsIgnored(t *testing.T) {
	m := newTestModel(t)
	stale := runCatalog(context.Background(), m.runner, query.Params{AssemblyID: "Z999"})()

	m = update(t, m, stale)
	assert.Equal(t, 1, m.results[3].result.Count())
}

func TestEmptyAssemblyRejected(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, runes("a"))
	m.input.SetValue("   ")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.editing)
	assert.True(t, m.messageErr)
	assert.Equal(t, "A100", m.params.AssemblyID)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
}

var errGraphGone = errors.New("graph unavailable")

func TestFailedQueryShowsError(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, resultsMsg{params: m.params, results: map[int]queryResult{
		2: {err: errGraphGone},
	}})
	assert.Equal(t, "1 of 1 queries failed for assembly A100", m.message)

	m = update(t, m, runes("2"))
	assert.Empty(t, m.table.Rows())
	assert.Contains(t, m.View(), errGraphGone.Error())
}

func TestQuitAndHelp(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.True(t, strings.Contains(m.View(), "rerun"))

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, key.Matches(runes("7"), keys.Jump))
}
