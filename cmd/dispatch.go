package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/miiv/pkg/service"
)

var headline = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

// Dispatch runs args through the router and writes a successful Response to
// out. A failed Response becomes the returned error.
func Dispatch(svc *service.Service, out io.Writer, args []string) error {
	if svc == nil {
		return errors.New("service not initialized")
	}
	resp := svc.Dispatch(args)
	if !resp.Success {
		return errors.New(resp.Error)
	}
	_, err := fmt.Fprintln(out, render(out, resp.Message))
	return err
}

// render highlights the first line of a message when out is a terminal.
func render(out io.Writer, message string) string {
	f, ok := out.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return message
	}
	first, rest, found := strings.Cut(message, "\n")
	if !found {
		return headline.Render(first)
	}
	return headline.Render(first) + "\n" + rest
}

// newVerbCmd builds a command that forwards its positional arguments to the
// router under verb. Argument validation is left to the handler so the CLI
// and the router report the same messages.
func newVerbCmd(svc **service.Service, verb, use, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Dispatch(*svc, cmd.OutOrStdout(), append([]string{verb}, args...))
		},
	}
}
