package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattsolo1/miiv/pkg/materialize"
	"github.com/mattsolo1/miiv/pkg/workspace"
)

const (
	msgAlreadyInitialized = "Workspace already initialized. Use miiv set {new_workspace} to change the workspace location."
	msgNotInitialized     = "Workspace not initialized. Use miiv init {workspace_dir} to initialize the workspace location."
	msgPathNotExists      = "The provided path does not exist. Please provide a valid directory path."
	msgPathNotDirectory   = "The provided path is not a directory. Please provide a valid directory path."
	msgMissingPath        = "Missing or invalid path!"
	msgNotImplemented     = "This command is not implemented yet."
)

func usage(syntax string) Response {
	return Fail("Incorrect command. Usage: miiv " + syntax)
}

// failure turns an error from the workspace layer into the message shown to
// the user.
func failure(err error) Response {
	switch {
	case errors.Is(err, workspace.ErrAlreadyInitialized):
		return Fail(msgAlreadyInitialized)
	case errors.Is(err, workspace.ErrNotInitialized):
		return Fail(msgNotInitialized)
	case errors.Is(err, workspace.ErrPathNotExists):
		return Fail(msgPathNotExists)
	case errors.Is(err, workspace.ErrPathNotDirectory):
		return Fail(msgPathNotDirectory)
	case errors.Is(err, workspace.ErrMissingOrInvalidPath):
		return Fail(msgMissingPath)
	case errors.Is(err, workspace.ErrNotImplemented):
		return Fail(msgNotImplemented)
	case errors.Is(err, workspace.ErrInvalidStateTransition):
		return Failf("Operation not allowed right now: %v.", err)
	case errors.Is(err, workspace.ErrInvalidCommand):
		return Failf("Invalid command: %v.", err)
	}
	return Failf("Error: %v", err)
}

// withReport appends the materializer's failures to a success message.
func withReport(message string, report *materialize.Report) string {
	if report == nil || report.OK() {
		return message
	}
	failed := report.FailedPaths()
	var b strings.Builder
	b.WriteString(message)
	fmt.Fprintf(&b, "\nWarning: %d scheme directories could not be created:", len(failed))
	for _, p := range failed {
		fmt.Fprintf(&b, "\n  - %s: %v", p, report.Failed[p])
	}
	b.WriteString("\nRun 'miiv doctor --fix' to retry.")
	return b.String()
}
