package command

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/miiv/pkg/workspace"
)

// TransferHandler answers copy and move. The workspace passes through Busy
// so the lifecycle gate is enforced, but no bytes are transferred yet.
type TransferHandler struct {
	verbs
	machine *workspace.Machine
	logger  *logrus.Entry
}

func NewTransferHandler(machine *workspace.Machine, logger *logrus.Entry) *TransferHandler {
	return &TransferHandler{
		verbs:   verbs{string(workspace.OpCopy), string(workspace.OpMove)},
		machine: machine,
		logger:  logger,
	}
}

func (h *TransferHandler) Handle(args []string) Response {
	op := workspace.Operation(fold(args[0]))

	initialized, err := h.machine.Initialized()
	if err != nil {
		return failure(err)
	}
	if !initialized {
		return Fail(msgNotInitialized)
	}
	if len(args) != 3 {
		return usage(fmt.Sprintf("%s {source} {destination}", op))
	}

	if err := h.machine.Begin(op, args[1], args[2]); err != nil {
		return failure(err)
	}
	h.logger.WithFields(logrus.Fields{
		"operation":   op,
		"source":      args[1],
		"destination": args[2],
	}).Info("No transfer engine available, releasing workspace")

	if err := h.machine.Complete(); err != nil {
		// Busy is never persisted, so a new process starts Ready again.
		h.logger.WithError(err).WithField("operation", op).Error("Failed to release workspace, it stays busy until miiv restarts")
		return Failf("Could not release the workspace after %s: %v. The workspace stays busy in this process; restart miiv to release it.", op, err)
	}
	return failure(fmt.Errorf("%w: %s", workspace.ErrNotImplemented, op))
}
