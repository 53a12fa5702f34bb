package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/backend/client"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/printer"
	"github.com/goaltrack/goaltrack/internal/storage/sqlite"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	goalID string
	format string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Show detailed goal status.")
	c.Cmd.Arg("goal-id", "Id of the goal.").Required().StringVar(&c.goalID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	creds, err := c.rootCmd.newCredentials(cfg)
	if err != nil {
		return err
	}
	defer creds.Close()

	var (
		goal     *model.Goal
		tasks    []model.Task
		projects []model.Project
	)

	// The local repository can resolve the full linked items, the remote
	// backend only reports their ids on the goal itself.
	if cfg.BackendURL == "" {
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DBPath,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("could not create repository: %w", err)
		}
		defer repo.Close()

		goal, err = repo.GetGoal(ctx, c.goalID)
		if err != nil {
			return fmt.Errorf("could not get goal: %w", err)
		}
		tasks, err = repo.ListTasksByGoal(ctx, c.goalID)
		if err != nil {
			return fmt.Errorf("could not list goal tasks: %w", err)
		}
		projects, err = repo.ListProjectsByGoal(ctx, c.goalID)
		if err != nil {
			return fmt.Errorf("could not list goal projects: %w", err)
		}
	} else {
		b, err := client.NewBackend(client.BackendConfig{
			BaseURL:     cfg.BackendURL,
			Credentials: creds,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("could not create backend client: %w", err)
		}

		goal, err = b.FetchGoal(ctx, c.goalID)
		if err != nil {
			return fmt.Errorf("could not fetch goal: %w", err)
		}
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintGoalStatus(*goal, tasks, projects); err != nil {
		return fmt.Errorf("could not print status: %w", err)
	}

	return nil
}
