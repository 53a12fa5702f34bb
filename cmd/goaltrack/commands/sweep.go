package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/printer"
	"github.com/goaltrack/goaltrack/internal/reconcile"
	"github.com/goaltrack/goaltrack/internal/store"
)

type SweepCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewSweepCommand returns the sweep command.
func NewSweepCommand(rootCmd *RootCommand, app *kingpin.Application) *SweepCommand {
	c := &SweepCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("sweep", "Run a single full reconciliation sweep and show the result.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c SweepCommand) Name() string { return c.Cmd.FullCommand() }

func (c SweepCommand) Run(ctx context.Context) error {
	cfg, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
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
		Backend:     b,
		Store:       goalStore,
		Credentials: creds,
		Logger:      c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create reconciler: %w", err)
	}

	if err := reconciler.ReconcileAll(ctx); err != nil {
		return fmt.Errorf("could not reconcile goals: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	goals := goalStore.List()
	if len(goals) == 0 {
		return p.PrintMessage("No goals to reconcile.")
	}

	if err := p.PrintGoalList(goals); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
