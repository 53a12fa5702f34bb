package commands

import (
	"github.com/alecthomas/kingpin/v2"
)

// NewProjectCommand returns the parent command for project subcommands.
func NewProjectCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("project", "Manage projects linked to goals.")
}
