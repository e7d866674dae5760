package command

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/miiv/pkg/workspace"
)

// Deps are the collaborators shared by the built-in handlers.
type Deps struct {
	Machine *workspace.Machine
	Logger  *logrus.Entry
	Now     func() time.Time
}

// New returns a Router with every built-in verb registered. Registration
// order decides which handler wins when verbs overlap.
func New(deps Deps) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	handlerLog := logger.WithField("sub-component", "handler")

	help := NewHelpHandler()
	return NewRouter(logger, help,
		NewInitHandler(deps.Machine, handlerLog),
		NewSetHandler(deps.Machine, handlerLog),
		NewTransferHandler(deps.Machine, handlerLog),
		NewStatusHandler(deps.Machine),
		NewResetHandler(deps.Machine),
		NewDoctorHandler(deps.Machine),
		NewTreeHandler(deps.Machine.Scheme()),
		NewRouteHandler(deps.Machine, deps.Now),
		help,
	)
}
