package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/printer"
	"github.com/goaltrack/goaltrack/internal/reconcile"
	"github.com/goaltrack/goaltrack/internal/store"
)

type TaskDoneCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	goalID string
	undo   bool
}

// NewTaskDoneCommand returns the task done command.
func NewTaskDoneCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskDoneCommand {
	c := &TaskDoneCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("done", "Mark a task as completed and sync goal progress.")
	c.Cmd.Arg("task-id", "Id of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("goal", "Goal id hint for the progress update.").StringVar(&c.goalID)
	c.Cmd.Flag("undo", "Mark the task as not completed instead.").BoolVar(&c.undo)

	return c
}

func (c TaskDoneCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskDoneCommand) Run(ctx context.Context) error {
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

	update, err := reconciler.CompleteTask(ctx, c.taskID, !c.undo, c.goalID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	state := "completed"
	if c.undo {
		state = "not completed"
	}
	fmt.Fprintf(c.rootCmd.Stdout, "Task %s marked as %s\n", c.taskID, state)
	for _, d := range update.UpdatedGoals {
		fmt.Fprintf(c.rootCmd.Stdout, "  Goal %s progress: %s\n", d.GoalID, printer.FormatProgress(d.Progress))
	}

	return nil
}
