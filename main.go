package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mattsolo1/grove-core/version"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/miiv/cmd"
	"github.com/mattsolo1/miiv/cmd/config"
	"github.com/mattsolo1/miiv/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:   "miiv",
		Short: "Keep files in a workspace laid out by a directory scheme",
		Long: `miiv keeps a workspace directory organized according to a declarative
scheme. 'miiv init <path>' creates the scheme below an existing directory
and records it as the workspace; the other commands check the workspace
state before they run.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			// Unknown verbs land here and get the router's suggestion.
			return cmd.Dispatch(svc, c.OutOrStdout(), args)
		},
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if c.Name() == "version" {
			return nil
		}
		config.InitConfig()

		var err error
		svc, err = config.InitService()
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(cmd.NewInitCmd(&svc))
	rootCmd.AddCommand(cmd.NewSetCmd(&svc))
	rootCmd.AddCommand(cmd.NewCopyCmd(&svc))
	rootCmd.AddCommand(cmd.NewMoveCmd(&svc))
	rootCmd.AddCommand(cmd.NewStatusCmd(&svc))
	rootCmd.AddCommand(cmd.NewResetCmd(&svc))
	rootCmd.AddCommand(cmd.NewDoctorCmd(&svc))
	rootCmd.AddCommand(cmd.NewTreeCmd(&svc))
	rootCmd.AddCommand(cmd.NewRouteCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())
	rootCmd.SetHelpCommand(cmd.NewHelpCmd(&svc))

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.GetInfo().Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
	if svc != nil {
		svc.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
