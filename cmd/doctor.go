package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/miiv/pkg/service"
)

func NewDoctorCmd(svc **service.Service) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check and repair the workspace directories",
		Long: `The doctor command checks that every directory of the scheme exists
below the workspace root.

Missing directories are listed and the command fails. Run with --fix to
create them again. Paths taken by a file or another non-directory are
reported too; --fix leaves those alone and they must be cleared by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbArgs := []string{"doctor"}
			if fix {
				verbArgs = append(verbArgs, "--fix")
			}
			return Dispatch(*svc, cmd.OutOrStdout(), verbArgs)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Create missing directories")

	return cmd
}
