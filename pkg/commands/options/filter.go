package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/timeutil"
	"tableflip.dev/studyplan/pkg/views"
)

// FilterOptions
type FilterOptions struct {
	Query  string
	Status string
	Sort   string
	Within string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Query, "query", "q", "",
		"Only tasks whose title or subject contains this text.")
	cmd.Flags().StringVar(&o.Status, "status", "all",
		"One of all, open, completed or overdue.")
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		"One of dueAsc, dueDesc, priority or createdDesc.")
	cmd.Flags().StringVar(&o.Within, "within", "",
		"Only tasks due in this window from now, example: --within=3d.")
}

func (o *FilterOptions) Filter() (views.Filter, time.Duration, error) {
	status, err := views.ParseStatus(o.Status)
	if err != nil {
		return views.Filter{}, 0, err
	}
	sortBy, err := views.ParseSort(o.Sort)
	if err != nil {
		return views.Filter{}, 0, err
	}
	var within time.Duration
	if o.Within != "" {
		if within, _, err = timeutil.ParseWindow(o.Within); err != nil {
			return views.Filter{}, 0, err
		}
	}
	return views.Filter{Query: o.Query, Status: status, SortBy: sortBy}, within, nil
}
