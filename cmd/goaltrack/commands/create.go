package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goaltrack/goaltrack/internal/model"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title       string
	description string
	source      string
	timeframe   string
	parentID    string
	private     bool
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("create", "Create a new goal.")
	c.Cmd.Arg("title", "Title for the goal.").Required().StringVar(&c.title)
	c.Cmd.Flag("description", "Goal description.").Short('d').StringVar(&c.description)
	c.Cmd.Flag("source", "Progress source (manual, tasks, projects).").Default(string(model.ProgressSourceManual)).EnumVar(&c.source, string(model.ProgressSourceManual), string(model.ProgressSourceTasks), string(model.ProgressSourceProjects))
	c.Cmd.Flag("timeframe", "Timeframe label (e.g. 'Q3 FY26').").StringVar(&c.timeframe)
	c.Cmd.Flag("parent", "Parent goal id.").StringVar(&c.parentID)
	c.Cmd.Flag("private", "Make the goal private.").BoolVar(&c.private)

	return c
}

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
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

	goal, err := b.CreateGoal(ctx, model.Goal{
		Title:       c.title,
		Description: c.description,
		Source:      model.ProgressSource(c.source),
		Timeframe:   c.timeframe,
		ParentID:    c.parentID,
		Private:     c.private,
		WorkspaceID: cfg.WorkspaceID,
	})
	if err != nil {
		return fmt.Errorf("could not create goal: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Goal created: %s\n", goal.ID)
	return nil
}
