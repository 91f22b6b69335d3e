package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/studyplan/pkg/glyph"
	"tableflip.dev/studyplan/pkg/timeutil"
	"tableflip.dev/studyplan/pkg/views"
)

const dayWidth = 18

var (
	dayStyle = lipgloss.NewStyle().
			Width(dayWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	todayStyle = dayStyle.
			BorderForeground(lipgloss.Color("11"))
	headStyle  = lipgloss.NewStyle().Bold(true)
	emptyStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Week prints seven day columns, Monday first, each listing the tasks due
// that day.
func (pp *PrettyPrint) Week(week timeutil.Range, buckets [7]views.DayBucket, now time.Time) {
	pp.Title(fmt.Sprintf("Week of %s", week.Start.Format("Mon 02 Jan 2006")))

	today := timeutil.StartOfDay(now)
	inner := dayWidth - 2
	cols := make([]string, 0, len(buckets))
	for _, b := range buckets {
		lines := []string{headStyle.Render(b.Day.Format("Mon 02"))}
		if len(b.Tasks) == 0 {
			lines = append(lines, emptyStyle.Render("free"))
		}
		for _, t := range b.Tasks {
			line := fmt.Sprintf("%s %s %s", glyph.ForTask(t, now), t.DueAt.In(b.Day.Location()).Format("15:04"), t.Title)
			lines = append(lines, truncate.StringWithTail(line, uint(inner), "…"))
		}

		style := dayStyle
		if b.Day.Equal(today) {
			style = todayStyle
		}
		cols = append(cols, style.Render(strings.Join(lines, "\n")))
	}

	_, _ = fmt.Fprintln(pp.out(), lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	pp.NewLine()
}
