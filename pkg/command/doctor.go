package command

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/miiv/pkg/workspace"
)

// DoctorHandler checks that every scheme directory exists under the
// workspace root and, with --fix, creates the missing ones.
type DoctorHandler struct {
	verbs
	machine *workspace.Machine
}

func NewDoctorHandler(machine *workspace.Machine) *DoctorHandler {
	return &DoctorHandler{verbs: verbs{"doctor"}, machine: machine}
}

func (h *DoctorHandler) Handle(args []string) Response {
	fix := false
	switch {
	case len(args) == 1:
	case len(args) == 2 && args[1] == "--fix":
		fix = true
	default:
		return usage("doctor [--fix]")
	}

	inspection, err := h.machine.Inspect()
	if err != nil {
		return failure(err)
	}
	root := inspection.Root
	if inspection.OK() {
		return OK(fmt.Sprintf("No issues found. All %d scheme directories exist under %s.", len(h.machine.Scheme().Paths()), root))
	}

	if !fix {
		var b strings.Builder
		if len(inspection.Missing) > 0 {
			fmt.Fprintf(&b, "%d scheme directories are missing under %s:", len(inspection.Missing), root)
			for _, p := range inspection.Missing {
				b.WriteString("\n  - " + p)
			}
		}
		if len(inspection.Blocked) > 0 {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%d scheme paths under %s are not directories and need manual attention:", len(inspection.Blocked), root)
			for _, p := range inspection.BlockedPaths() {
				fmt.Fprintf(&b, "\n  - %s: %v", p, inspection.Blocked[p])
			}
		}
		if len(inspection.Missing) > 0 {
			b.WriteString("\nRun 'miiv doctor --fix' to create the missing directories.")
		}
		return Fail(b.String())
	}

	report, err := h.machine.Repair()
	if err != nil {
		return failure(err)
	}
	if !report.OK() {
		return Failf("Repair incomplete under %s: %s.", root, report.Summary())
	}
	return OK(fmt.Sprintf("Created %d missing directories under %s.", len(report.Created), root))
}
