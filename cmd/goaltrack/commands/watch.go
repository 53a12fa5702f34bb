package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/reconcile"
	"github.com/goaltrack/goaltrack/internal/store"
)

type WatchCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sweepInterval  time.Duration
	activityWindow time.Duration
	settleDelay    time.Duration
}

// NewWatchCommand returns the watch command.
func NewWatchCommand(rootCmd *RootCommand, app *kingpin.Application) *WatchCommand {
	c := &WatchCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("watch", "Run the periodic reconciliation loop until interrupted.")
	c.Cmd.Flag("sweep-interval", "Period of the sweep trigger check.").DurationVar(&c.sweepInterval)
	c.Cmd.Flag("activity-window", "Trailing window after a mutation during which sweeps keep firing.").DurationVar(&c.activityWindow)
	c.Cmd.Flag("settle-delay", "Delay before the baseline sweep.").DurationVar(&c.settleDelay)

	return c
}

func (c WatchCommand) Name() string { return c.Cmd.FullCommand() }

func (c WatchCommand) Run(ctx context.Context) error {
	cfg, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	// Flags override config file values.
	if c.sweepInterval > 0 {
		cfg.SweepInterval = c.sweepInterval
	}
	if c.activityWindow > 0 {
		cfg.ActivityWindow = c.activityWindow
	}
	if c.settleDelay > 0 {
		cfg.SettleDelay = c.settleDelay
	}

	creds, err := c.rootCmd.newCredentials(cfg)
	if err != nil {
		return err
	}
	defer creds.Close()

	b, closeBackend, err := c.rootCmd.newBackend(ctx, cfg, creds)
	if err != nil {
		return err
	}
	defer closeBackend()

	goalStore, err := store.New(store.Config{
		Backend:     b,
		Credentials: creds,
		Logger:      c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create goal store: %w", err)
	}
	if err := goalStore.Load(ctx, goalFilter(cfg)); err != nil {
		return fmt.Errorf("could not load goals: %w", err)
	}

	reconciler, err := reconcile.New(reconcile.Config{
		Backend:        b,
		Store:          goalStore,
		Credentials:    creds,
		Logger:         c.rootCmd.Logger,
		SweepInterval:  cfg.SweepInterval,
		ActivityWindow: cfg.ActivityWindow,
		SettleDelay:    cfg.SettleDelay,
	})
	if err != nil {
		return fmt.Errorf("could not create reconciler: %w", err)
	}

	c.rootCmd.Logger.Infof("Reconciliation loop started")

	err = reconciler.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("reconciliation loop failed: %w", err)
	}

	return nil
}
