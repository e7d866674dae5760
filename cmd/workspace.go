package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/miiv/pkg/service"
)

func NewStatusCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "status",
		"status",
		"Show the workspace state and root",
		"Show the lifecycle state of the workspace, its root and the loaded scheme.",
	)
}

func NewTreeCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "tree",
		"tree",
		"Print the workspace scheme",
		"Print the loaded scheme as a tree, with the content routine and purpose of each directory.",
	)
}

func NewRouteCmd(svc **service.Service) *cobra.Command {
	cmd := newVerbCmd(svc, "route",
		"route <directory> <file>",
		"Show where a file would be filed",
		`Show the path a file would be filed under inside a scheme directory.

The directory is given as a slash separated path of scheme names, matched
case-insensitively. The result depends on the content routine of that
directory: by date, by date and type, or by date and title.`,
	)
	cmd.Example = `  miiv route "01 Personal/03 Finance" "Invoice March.pdf"`
	return cmd
}

// NewHelpCmd replaces cobra's help command so that 'miiv help' prints the
// router's help text.
func NewHelpCmd(svc **service.Service) *cobra.Command {
	return newVerbCmd(svc, "help",
		"help",
		"Show the list of commands",
		"Show the list of commands.",
	)
}
