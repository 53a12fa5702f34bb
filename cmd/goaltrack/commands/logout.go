package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kingpin/v2"
)

type LogoutCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewLogoutCommand returns the logout command.
func NewLogoutCommand(rootCmd *RootCommand, app *kingpin.Application) *LogoutCommand {
	c := &LogoutCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("logout", "Remove the stored session token and end the session.")

	return c
}

func (c LogoutCommand) Name() string { return c.Cmd.FullCommand() }

func (c LogoutCommand) Run(ctx context.Context) error {
	cfg, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	err = os.Remove(cfg.TokenFile)
	switch {
	case err == nil:
		fmt.Fprintf(c.rootCmd.Stdout, "Session ended\n")
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(c.rootCmd.Stdout, "No active session\n")
	default:
		return fmt.Errorf("could not remove token file: %w", err)
	}

	return nil
}
