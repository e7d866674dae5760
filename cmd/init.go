package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/miiv/pkg/service"
)

func NewInitCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "init",
		"init <path>",
		"Initialize the workspace at an existing directory",
		`Initialize the workspace at an existing directory.

This command will:
- Create every directory of the scheme below <path>
- Record <path> as the workspace root

The directory must already exist. A workspace can only be initialized once;
use 'miiv set' to move it.`,
	)
}

func NewSetCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "set",
		"set <path>",
		"Move the workspace to another existing directory",
		`Move an initialized workspace to another existing directory.

The scheme is created below the new directory and it becomes the workspace
root. The previous root and its contents are left untouched.`,
	)
}

func NewResetCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "reset",
		"reset",
		"Forget the workspace root",
		`Forget the recorded workspace root so that 'miiv init' can be run again.
Directories on disk are not removed.`,
	)
}
