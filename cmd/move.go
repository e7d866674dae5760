package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/miiv/pkg/service"
)

func NewMoveCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "move",
		"move <source> <destination>",
		"Move files into the workspace (not implemented)",
		`Move files into the workspace.

The workspace must be initialized and idle. Transfers are not implemented
yet: the command checks the workspace state and reports an error.`,
	)
}

func NewCopyCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "copy",
		"copy <source> <destination>",
		"Copy files into the workspace (not implemented)",
		`Copy files into the workspace, keeping the originals.

The workspace must be initialized and idle. Transfers are not implemented
yet: the command checks the workspace state and reports an error.`,
	)
}
