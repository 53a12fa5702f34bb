package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/printer"
	"github.com/goaltrack/goaltrack/internal/store"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List the goals of the active session.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
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

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	goals := goalStore.List()
	if len(goals) == 0 {
		if _, ok := creds.Token(); !ok {
			return p.PrintMessage("No active session, run 'goaltrack login' first.")
		}
		return p.PrintMessage("No goals found.")
	}

	if err := p.PrintGoalList(goals); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
