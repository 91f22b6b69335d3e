package views

import (
	"math"
	"sort"
	"time"

	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/timeutil"
)

// Stats summarizes the task collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	// Upcoming counts open tasks not yet due.
	Upcoming int `json:"upcoming"`
	Overdue  int `json:"overdue"`
	DueSoon  int `json:"dueSoon"`
	// WeeklyHours is the open workload due in the current week, to one decimal.
	WeeklyHours float64 `json:"weeklyHours"`
}

// ComputeStats counts tasks relative to now.
func ComputeStats(tasks []model.Task, now time.Time) Stats {
	week := timeutil.WeekRange(0, now)
	st := Stats{Total: len(tasks)}
	mins := 0
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
			continue
		}
		if !t.DueAt.Before(now) {
			st.Upcoming++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
		if t.IsDueSoon(now) {
			st.DueSoon++
		}
		if week.Contains(t.DueAt) {
			mins += t.DurationMins
		}
	}
	st.WeeklyHours = math.Floor(float64(mins)/60*10+0.5) / 10
	return st
}

// DayBucket holds the tasks due on one calendar day.
type DayBucket struct {
	Day   time.Time    `json:"day"`
	Tasks []model.Task `json:"tasks"`
}

// BucketByDay splits the tasks due inside week into seven day buckets,
// Monday first. A day spans [midnight, next midnight). Each bucket is sorted
// by due time.
func BucketByDay(tasks []model.Task, week timeutil.Range) [7]DayBucket {
	var buckets [7]DayBucket
	start := timeutil.StartOfDay(week.Start)
	for i := range buckets {
		buckets[i] = DayBucket{Day: start.AddDate(0, 0, i), Tasks: []model.Task{}}
	}
	for _, t := range tasks {
		for i := range buckets {
			next := start.AddDate(0, 0, i+1)
			if !t.DueAt.Before(buckets[i].Day) && t.DueAt.Before(next) {
				buckets[i].Tasks = append(buckets[i].Tasks, t.Clone())
				break
			}
		}
	}
	for i := range buckets {
		b := buckets[i].Tasks
		sort.SliceStable(b, func(x, y int) bool { return b[x].DueAt.Before(b[y].DueAt) })
	}
	return buckets
}

// Progress is a goal's completion.
type Progress struct {
	// Percent is in [0, 100].
	Percent    int  `json:"percent"`
	IsComplete bool `json:"isComplete"`
}

// GoalProgress rounds progress over target to a whole percent. Targets below
// one hour count as one hour.
func GoalProgress(g model.Goal) Progress {
	ratio := g.ProgressHours / math.Max(g.TargetHours, 1) * 100
	if !model.IsFinite(ratio) {
		ratio = 0
	}
	pct := int(math.Floor(math.Min(math.Max(ratio, 0), 100) + 0.5))
	return Progress{Percent: pct, IsComplete: pct >= 100}
}
