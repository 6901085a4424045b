// Package report prints catalog results and the catalog itself to a console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/assembly-kg/pkg/query"
)

// Printer writes the console listing. Styles are bound to the writer's renderer, so
// output to a pipe or file carries no escape codes.
type Printer struct {
	w      io.Writer
	styled bool

	headerStyle lipgloss.Style
	emptyStyle  lipgloss.Style
	borderStyle lipgloss.Style
}

// NewPrinter creates a styled printer writing to w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		styled: true,
		headerStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")),
		emptyStyle: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		borderStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FF00FF")),
	}
}

// NewPlainPrinter creates a printer that never styles its output
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// PrintResult writes "[Query N] <title>" followed by one formatted line per row
func (p *Printer) PrintResult(q *query.Query, title string, result *query.ResultSet) error {
	var b strings.Builder

	b.WriteString(p.render(p.headerStyle, fmt.Sprintf("[Query %d] %s", q.Number, title)))
	b.WriteString("\n")
	if result.Count() == 0 {
		b.WriteString(p.render(p.emptyStyle, "(no results)"))
		b.WriteString("\n")
	}
	for i := range result.Rows {
		b.WriteString(q.Line(result.Strings(i)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// PrintAll writes every outcome separated by blank lines
func (p *Printer) PrintAll(outcomes []query.Outcome) error {
	for i, o := range outcomes {
		if i > 0 {
			if _, err := io.WriteString(p.w, "\n"); err != nil {
				return err
			}
		}
		if err := p.PrintResult(o.Query, o.Title, o.Result); err != nil {
			return err
		}
	}
	return nil
}

// PrintCatalog writes a table of the queries with their slugs and columns
func (p *Printer) PrintCatalog(queries []*query.Query, params query.Params) error {
	rows := make([][]string, 0, len(queries))
	for _, q := range queries {
		param := ""
		if q.Parameterized {
			param = "assembly"
		}
		rows = append(rows, []string{
			fmt.Sprint(q.Number),
			q.Slug,
			q.Title(params),
			strings.Join(q.Columns, ", "),
			param,
		})
	}

	t := table.New().
		Headers("#", "SLUG", "TITLE", "COLUMNS", "PARAMS").
		Rows(rows...)
	if p.styled {
		t = t.Border(lipgloss.RoundedBorder()).BorderStyle(p.borderStyle)
	} else {
		t = t.Border(lipgloss.HiddenBorder())
	}

	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}
