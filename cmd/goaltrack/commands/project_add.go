package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/model"
)

type ProjectAddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name   string
	goalID string
}

// NewProjectAddCommand returns the project add command.
func NewProjectAddCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectAddCommand {
	c := &ProjectAddCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("add", "Create a new project linked to a goal.")
	c.Cmd.Arg("name", "Name for the project.").Required().StringVar(&c.name)
	c.Cmd.Flag("goal", "Goal id the project contributes to.").Required().StringVar(&c.goalID)

	return c
}

func (c ProjectAddCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectAddCommand) Run(ctx context.Context) error {
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

	project, err := b.CreateProject(ctx, model.Project{
		Name:   c.name,
		GoalID: c.goalID,
	})
	if err != nil {
		return fmt.Errorf("could not create project: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Project created: %s\n", project.ID)
	return nil
}
