package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/printer"
	"github.com/goaltrack/goaltrack/internal/reconcile"
	"github.com/goaltrack/goaltrack/internal/store"
)

type ProjectDoneCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	goalID    string
	undo      bool
}

// NewProjectDoneCommand returns the project done command.
func NewProjectDoneCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectDoneCommand {
	c := &ProjectDoneCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("done", "Mark a project as completed and sync goal progress.")
	c.Cmd.Arg("project-id", "Id of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Flag("goal", "Goal id hint for the progress update.").StringVar(&c.goalID)
	c.Cmd.Flag("undo", "Mark the project as not completed instead.").BoolVar(&c.undo)

	return c
}

func (c ProjectDoneCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectDoneCommand) Run(ctx context.Context) error {
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

	update, err := reconciler.CompleteProject(ctx, c.projectID, !c.undo, c.goalID)
	if err != nil {
		return fmt.Errorf("could not update project: %w", err)
	}

	state := "completed"
	if c.undo {
		state = "not completed"
	}
	fmt.Fprintf(c.rootCmd.Stdout, "Project %s marked as %s\n", c.projectID, state)
	for _, d := range update.UpdatedGoals {
		fmt.Fprintf(c.rootCmd.Stdout, "  Goal %s progress: %s\n", d.GoalID, printer.FormatProgress(d.Progress))
	}

	return nil
}
