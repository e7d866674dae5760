package command

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/miiv/pkg/scheme"
)

// TreeHandler prints the scheme as an indented tree.
type TreeHandler struct {
	verbs
	root *scheme.Node
}

func NewTreeHandler(root *scheme.Node) *TreeHandler {
	return &TreeHandler{verbs: verbs{"tree"}, root: root}
}

func (h *TreeHandler) Handle(args []string) Response {
	if len(args) != 1 {
		return usage("tree")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (v%s)", h.root.Name, h.root.Version())
	renderChildren(&b, h.root, "")
	return OK(b.String())
}

func renderChildren(b *strings.Builder, n *scheme.Node, prefix string) {
	for i, child := range n.Children {
		branch, indent := "├── ", "│   "
		if i == len(n.Children)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString("\n" + prefix + branch + child.Name)
		if child.Content != scheme.RoutineNone {
			fmt.Fprintf(b, " [%s]", child.Content)
		}
		if child.Purpose != "" {
			b.WriteString("  # " + child.Purpose)
		}
		renderChildren(b, child, prefix+indent)
	}
}
