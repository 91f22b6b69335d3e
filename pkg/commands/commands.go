package commands

import (
	"context"
	"log/slog"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/commands/options"
	"tableflip.dev/studyplan/pkg/logging"
	"tableflip.dev/studyplan/pkg/store"
)

var (
	output   = &options.OutputOptions{}
	logLevel string
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "studyplan",
		Short: base.Wrap80("Plan study tasks and goals on the command line, with reminders before things are due."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error. Overrides log.level from the config.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addGoal(topLevel)
	addWeek(topLevel)
	addStats(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addSettings(topLevel)
	addNotify(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

// planner is the opened state every command works on.
type planner struct {
	cfg   store.Config
	kv    store.KV
	store *app.Service
	log   *slog.Logger
}

func openPlanner(ctx context.Context) (*planner, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel()
	if logLevel != "" {
		level = logLevel
	}
	log := logging.New(logging.Config{Level: level, Format: logging.Format(cfg.LogFormat())})

	kv, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", "backend", cfg.Backend())

	svc := app.New(kv, app.WithLogger(log))
	svc.Load(ctx)
	return &planner{cfg: cfg, kv: kv, store: svc, log: log}, nil
}

func (p *planner) Close() {
	if err := p.kv.Close(); err != nil {
		p.log.Warn("store close", "error", err)
	}
}

// withPlanner opens the planner, runs fn and closes it again.
func withPlanner(cmd *cobra.Command, fn func(ctx context.Context, p *planner) error) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := openPlanner(ctx)
	if err != nil {
		return output.HandleError(err)
	}
	defer p.Close()
	return output.HandleError(fn(ctx, p))
}
