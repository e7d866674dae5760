package command

import (
	"path/filepath"
	"time"

	"github.com/mattsolo1/miiv/pkg/scheme"
	"github.com/mattsolo1/miiv/pkg/workspace"
)

// RouteHandler computes where a file belongs inside the workspace according
// to the content routine of a scheme directory. Nothing is written.
type RouteHandler struct {
	verbs
	machine *workspace.Machine
	now     func() time.Time
}

func NewRouteHandler(machine *workspace.Machine, now func() time.Time) *RouteHandler {
	if now == nil {
		now = time.Now
	}
	return &RouteHandler{verbs: verbs{"route"}, machine: machine, now: now}
}

func (h *RouteHandler) Handle(args []string) Response {
	current, err := h.machine.Current()
	if err != nil {
		return failure(err)
	}
	if current.IsUninitialized() {
		return Fail(msgNotInitialized)
	}
	if len(args) != 3 {
		return usage("route {scheme directory} {file}")
	}

	root := h.machine.Scheme()
	names, node, ok := resolve(root, args[1])
	if !ok {
		msg := "No scheme directory named \"" + args[1] + "\"."
		if s := suggest(args[1], root.Paths()); s != "" {
			msg += " Did you mean \"" + s + "\"?"
		}
		return Fail(msg)
	}
	if len(names) == 0 {
		return usage("route {scheme directory} {file}")
	}

	file := filepath.Base(args[2])
	if file == "." || file == string(filepath.Separator) {
		return Fail(msgMissingPath)
	}

	target := filepath.Join(append([]string{current.Root}, names...)...)
	return OK(filepath.Join(target, node.RoutePath(h.now(), file), file))
}

// resolve finds the node at path and returns the declared names leading to
// it, so case differences in the input do not leak into the result.
func resolve(root *scheme.Node, path string) ([]string, *scheme.Node, bool) {
	found, ok := root.Find(path)
	if !ok {
		return nil, nil, false
	}
	if found == root {
		return nil, root, true
	}

	var names []string
	_ = root.Walk(func(p []string, n *scheme.Node) error {
		if n == found && names == nil {
			names = p
		}
		return nil
	})
	return names, found, true
}
