package command

// HelpText is the usage summary returned by help and appended to
// unknown-verb failures.
const HelpText = `Usage: miiv <command> [arguments]

Commands:
  init <path>              Initialize the workspace at an existing directory
  set <path>               Move the workspace to another existing directory
  copy <source> <dest>     Copy files into the workspace (not implemented)
  move <source> <dest>     Move files into the workspace (not implemented)
  status                   Show the workspace state and root
  reset                    Forget the workspace root, keeping its directories
  doctor [--fix]           List scheme directories missing from the workspace
  tree                     Print the workspace scheme
  route <directory> <file> Show where a file would be filed
  help                     Show this help`

// HelpHandler returns HelpText and never touches the workspace.
type HelpHandler struct {
	verbs
}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{verbs: verbs{"help", "--help", "-h"}}
}

func (h *HelpHandler) Handle(args []string) Response {
	return OK(HelpText)
}
