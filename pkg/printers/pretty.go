package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/studyplan/pkg/glyph"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/timeutil"
	"tableflip.dev/studyplan/pkg/views"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const barWidth = 20

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Tasks prints one row per task with its state glyph at now.
func (pp *PrettyPrint) Tasks(now time.Time, tasks ...model.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		state := glyph.ForTask(t, now)
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(t.ID))
		}
		title := t.Title
		if t.Completed {
			title = faint.Sprint(glyph.Strike(title))
		}
		remind := ""
		if t.RemindMins != nil {
			remind = fmt.Sprintf("%s %dm", glyph.Reminder, *t.RemindMins)
		}
		row = append(row,
			stateColor(state).Sprint(state.String()),
			glyph.ForPriority(t.Priority).String(),
			title,
			faint.Sprint(t.Subject),
			stateColor(state).Sprint(timeutil.FormatDue(t.DueAt, now)),
			faint.Sprint(formatMinutes(t.DurationMins)),
			remind,
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func stateColor(s glyph.State) *color.Color {
	switch s {
	case glyph.Overdue:
		return color.New(color.FgHiRed, color.Bold)
	case glyph.DueSoon:
		return color.New(color.FgHiYellow)
	case glyph.Completed, glyph.GoalComplete:
		return color.New(color.FgGreen)
	}
	return color.New()
}

// Goals prints a progress bar per goal.
func (pp *PrettyPrint) Goals(goals ...model.Goal) {
	if len(goals) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, g := range goals {
		p := views.GoalProgress(g)
		state := glyph.GoalOpen
		if p.IsComplete {
			state = glyph.GoalComplete
		}
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(g.ID))
		}
		row = append(row,
			stateColor(state).Sprint(state.String()),
			g.Title,
			Bar(p.Percent, barWidth),
			fmt.Sprintf("%3d%%", p.Percent),
			faint.Sprintf("%s / %s h", formatHours(g.ProgressHours), formatHours(g.TargetHours)),
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Stats prints the workload summary.
func (pp *PrettyPrint) Stats(st views.Stats) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Total", st.Total)
	tbl.AddRow("Completed", st.Completed)
	tbl.AddRow("Upcoming", st.Upcoming)
	tbl.AddRow("Overdue", color.New(color.FgHiRed).Sprint(st.Overdue))
	tbl.AddRow("Due soon", color.New(color.FgHiYellow).Sprint(st.DueSoon))
	tbl.AddRow("This week", bold.Sprintf("%.1f h", st.WeeklyHours))
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Bar renders pct of width cells filled.
func Bar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

func formatHours(h float64) string {
	if h == float64(int64(h)) {
		return fmt.Sprintf("%d", int64(h))
	}
	return fmt.Sprintf("%.1f", h)
}
