package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type ParentCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	goalID   string
	parentID string
	clear    bool
}

// NewParentCommand returns the parent command.
func NewParentCommand(rootCmd *RootCommand, app *kingpin.Application) *ParentCommand {
	c := &ParentCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("parent", "Set or clear a goal's parent.")
	c.Cmd.Arg("goal-id", "Id of the goal.").Required().StringVar(&c.goalID)
	c.Cmd.Arg("parent-id", "Id of the parent goal.").StringVar(&c.parentID)
	c.Cmd.Flag("clear", "Clear the goal's parent.").BoolVar(&c.clear)

	return c
}

func (c ParentCommand) Name() string { return c.Cmd.FullCommand() }

func (c ParentCommand) Run(ctx context.Context) error {
	if !c.clear && c.parentID == "" {
		return fmt.Errorf("either a parent id or --clear is required")
	}
	if c.clear && c.parentID != "" {
		return fmt.Errorf("a parent id and --clear are mutually exclusive")
	}

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

	if err := b.SetGoalParent(ctx, c.goalID, c.parentID); err != nil {
		return fmt.Errorf("could not set goal parent: %w", err)
	}

	if c.clear {
		fmt.Fprintf(c.rootCmd.Stdout, "Goal %s parent cleared\n", c.goalID)
	} else {
		fmt.Fprintf(c.rootCmd.Stdout, "Goal %s parent set to %s\n", c.goalID, c.parentID)
	}
	return nil
}
