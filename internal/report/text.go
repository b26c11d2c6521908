package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/specialistvlad/trafficgo/internal/outcome"
	"github.com/specialistvlad/trafficgo/internal/stats"
)

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	passed  lipgloss.Style
	failed  lipgloss.Style
	blocked lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
}

// newStyles binds styles to w so colors are dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
		passed:  r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		blocked: r.NewStyle().Foreground(lipgloss.Color("214")),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
	}
}

func (s styles) kind(k outcome.Kind) lipgloss.Style {
	switch k {
	case outcome.Passed:
		return s.passed
	case outcome.Blocked:
		return s.blocked
	}
	return s.failed
}

func renderText(w io.Writer, r stats.Report) error {
	st := newStyles(w)
	var b strings.Builder

	title := "Scenario " + r.Scenario
	if r.RunID != "" {
		title += st.muted.Render(" (run " + r.RunID + ")")
	}
	b.WriteString(st.title.Render(title))
	b.WriteString("\n")

	if len(r.Outcomes) > 0 {
		rows := make([][]string, 0, len(r.Outcomes))
		for _, o := range r.Outcomes {
			rows = append(rows, []string{
				fmt.Sprint(o.RequestID),
				fmt.Sprint(o.Wave),
				o.Kind.String(),
				statusCell(o.Status),
				o.Duration.Round(time.Millisecond).String(),
				summary(o),
			})
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(st.muted).
			Headers("ID", "WAVE", "RESULT", "STATUS", "TIME", "DETAIL").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return st.header
				}
				if col == 2 {
					return st.kind(r.Outcomes[row].Kind).Padding(0, 1)
				}
				return st.cell
			})
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	for _, o := range r.Outcomes {
		if o.Kind != outcome.FailedValidation || o.Verdict == nil {
			continue
		}
		for _, c := range o.Verdict.Checks {
			if c.Passed {
				continue
			}
			b.WriteString(st.failed.Render(fmt.Sprintf("request %d: %s mismatch", o.RequestID, c.Check)))
			b.WriteString("\n")
			b.WriteString(indent(c.Detail, "    "))
			b.WriteString("\n")
		}
	}

	b.WriteString(fmt.Sprintf("%d requests: %d passed, %d failed validation, %d failed transport, %d blocked\n",
		r.Total,
		r.Count(outcome.Passed),
		r.Count(outcome.FailedValidation),
		r.Count(outcome.FailedTransport),
		r.Count(outcome.Blocked),
	))
	verdict := st.failed.Render("✖ FAILED")
	if r.Passed() {
		verdict = st.passed.Render("✔ PASSED")
	}
	b.WriteString(verdict)
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func renderInvalidText(w io.Writer, inv Invalid) error {
	st := newStyles(w)
	var b strings.Builder

	head := "✖ Scenario invalid"
	if inv.Scenario != "" {
		head += ": " + inv.Scenario
	}
	b.WriteString(st.failed.Render(head))
	b.WriteString("\n")
	for _, e := range inv.Errors {
		b.WriteString("  - " + e + "\n")
	}
	b.WriteString(st.muted.Render("No requests were sent."))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func statusCell(status int) string {
	if status == 0 {
		return "-"
	}
	return fmt.Sprint(status)
}

// summary is the one-line detail shown in the table.
func summary(o outcome.Outcome) string {
	switch o.Kind {
	case outcome.Passed:
		return ""
	case outcome.FailedValidation:
		if o.Verdict != nil {
			return string(o.Verdict.Failed) + " mismatch"
		}
	case outcome.Blocked:
		return o.Reason
	}
	if i := strings.IndexByte(o.Reason, '\n'); i >= 0 {
		return o.Reason[:i]
	}
	return o.Reason
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
