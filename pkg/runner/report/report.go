// Package report provides the read-only planner summaries: the weekly
// timeline and workload statistics.
package report

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/printers"
	"tableflip.dev/studyplan/pkg/timeutil"
	"tableflip.dev/studyplan/pkg/views"
)

var errNoStore = errors.New("no planner store")

// Week renders the Monday to Sunday timeline Offset weeks from now.
type Week struct {
	Offset int
	JSON   bool

	Store   *app.Service
	Printer printers.PrettyPrint
	Now     func() time.Time
}

// WeekResult is the --json form of a week.
type WeekResult struct {
	Range timeutil.Range     `json:"range"`
	Days  [7]views.DayBucket `json:"days"`
}

func (n *Week) Do(_ context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	week := timeutil.WeekRange(n.Offset, now)
	buckets := views.BucketByDay(n.Store.Tasks(), week)
	if n.JSON {
		return n.Printer.JSON(WeekResult{Range: week, Days: buckets})
	}

	n.Printer.NewLine()
	n.Printer.Week(week, buckets, now)
	return nil
}

// Stats prints task totals and the current week's workload.
type Stats struct {
	JSON bool

	Store   *app.Service
	Printer printers.PrettyPrint
	Now     func() time.Time
}

func (n *Stats) Do(_ context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	st := views.ComputeStats(n.Store.Tasks(), now)
	if n.JSON {
		return n.Printer.JSON(st)
	}

	n.Printer.NewLine()
	n.Printer.Title("Workload")
	n.Printer.Stats(st)
	return nil
}
