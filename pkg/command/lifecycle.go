package command

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/miiv/pkg/workspace"
)

// InitHandler materializes the scheme under a directory and records it as
// the workspace root.
type InitHandler struct {
	verbs
	machine *workspace.Machine
	logger  *logrus.Entry
}

func NewInitHandler(machine *workspace.Machine, logger *logrus.Entry) *InitHandler {
	return &InitHandler{verbs: verbs{"init"}, machine: machine, logger: logger}
}

func (h *InitHandler) Handle(args []string) Response {
	initialized, err := h.machine.Initialized()
	if err != nil {
		return failure(err)
	}
	if initialized {
		return Fail(msgAlreadyInitialized)
	}
	if len(args) != 2 {
		return usage("init {valid path}")
	}

	report, err := h.machine.Init(args[1])
	if err != nil {
		h.logger.WithError(err).WithField("path", args[1]).Debug("Init rejected")
		return failure(err)
	}
	return OK(withReport("Initialized workspace successfully at "+report.Root, report))
}

// SetHandler moves an initialized workspace to another directory.
type SetHandler struct {
	verbs
	machine *workspace.Machine
	logger  *logrus.Entry
}

func NewSetHandler(machine *workspace.Machine, logger *logrus.Entry) *SetHandler {
	return &SetHandler{verbs: verbs{"set"}, machine: machine, logger: logger}
}

func (h *SetHandler) Handle(args []string) Response {
	initialized, err := h.machine.Initialized()
	if err != nil {
		return failure(err)
	}
	if !initialized {
		return Fail(msgNotInitialized)
	}
	if len(args) != 2 {
		return usage("set {valid path}")
	}

	report, err := h.machine.Set(args[1])
	if err != nil {
		h.logger.WithError(err).WithField("path", args[1]).Debug("Set rejected")
		return failure(err)
	}
	return OK(withReport("Workspace successfully changed to: "+report.Root, report))
}

// ResetHandler forgets the workspace root. Directories on disk are kept.
type ResetHandler struct {
	verbs
	machine *workspace.Machine
}

func NewResetHandler(machine *workspace.Machine) *ResetHandler {
	return &ResetHandler{verbs: verbs{"reset"}, machine: machine}
}

func (h *ResetHandler) Handle(args []string) Response {
	if len(args) != 1 {
		return usage("reset")
	}

	current, err := h.machine.Current()
	if err != nil {
		return failure(err)
	}
	if err := h.machine.Reset(); err != nil {
		return failure(err)
	}

	var b strings.Builder
	b.WriteString("Workspace reset.")
	if current.Root != "" {
		b.WriteString(" Directories under " + current.Root + " were left untouched.")
	}
	return OK(b.String())
}
