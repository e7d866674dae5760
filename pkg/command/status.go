package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mattsolo1/miiv/pkg/workspace"
)

// StatusHandler reports the lifecycle state and the loaded scheme.
type StatusHandler struct {
	verbs
	machine *workspace.Machine
}

func NewStatusHandler(machine *workspace.Machine) *StatusHandler {
	return &StatusHandler{verbs: verbs{"status"}, machine: machine}
}

func (h *StatusHandler) Handle(args []string) Response {
	current, err := h.machine.Current()
	if err != nil {
		return failure(err)
	}

	root := current.Root
	if root == "" {
		root = "-"
	}
	s := h.machine.Scheme()

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROPERTY\tVALUE")
	fmt.Fprintln(w, "--------\t-----")
	fmt.Fprintf(w, "State\t%s\n", current.Kind)
	fmt.Fprintf(w, "Root\t%s\n", root)
	if current.IsBusy() {
		fmt.Fprintf(w, "Operation\t%s %s -> %s\n", current.Op, current.Source, current.Destination)
	}
	fmt.Fprintf(w, "Scheme\t%s (v%s, %d directories)\n", s.Name, s.Version(), len(s.Paths()))
	if err := w.Flush(); err != nil {
		return failure(err)
	}
	return OK(strings.TrimRight(b.String(), "\n"))
}
