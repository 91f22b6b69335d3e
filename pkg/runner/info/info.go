// Package info reports where planner state lives and how much of it there is.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/store"
)

type Info struct {
	Config store.Config
	Store  *app.Service
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	file := n.Config.File()
	if file == "" {
		file = "(defaults)"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config file:", file)
	tbl.AddRow("Backend:", n.Config.Backend())
	switch n.Config.Backend() {
	case store.BackendSQLite:
		tbl.AddRow("Database:", n.Config.SQLitePath())
	case store.BackendRedis:
		tbl.AddRow("Redis:", n.Config.RedisURL())
	case store.BackendMemory:
	default:
		tbl.AddRow("Path:", n.Config.BasePath())
	}
	tbl.AddRow("Log level:", n.Config.LogLevel())

	if n.Store == nil {
		_, _ = fmt.Fprintln(out, tbl)
		return fmt.Errorf("failed to open the planner store")
	}

	st := n.Store.Settings()
	tbl.AddRow("Tasks:", len(n.Store.Tasks()))
	tbl.AddRow("Goals:", len(n.Store.Goals()))
	tbl.AddRow("Default reminder:", fmt.Sprintf("%d min", st.DefaultReminderMins))
	tbl.AddRow("Notifications:", st.Notifications)

	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
