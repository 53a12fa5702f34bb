package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
)

type LoginCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	token string
}

// NewLoginCommand returns the login command.
func NewLoginCommand(rootCmd *RootCommand, app *kingpin.Application) *LoginCommand {
	c := &LoginCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("login", "Store a session token and start a session.")
	c.Cmd.Flag("token", "Session token.").Required().Envar("GOALTRACK_TOKEN").StringVar(&c.token)

	return c
}

func (c LoginCommand) Name() string { return c.Cmd.FullCommand() }

func (c LoginCommand) Run(ctx context.Context) error {
	cfg, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TokenFile), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	if err := os.WriteFile(cfg.TokenFile, []byte(c.token+"\n"), 0600); err != nil {
		return fmt.Errorf("could not write token file: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Session started, token stored at %s\n", cfg.TokenFile)
	return nil
}
