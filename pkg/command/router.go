package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"
)

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestionDistance = 2

// Router dispatches an argument vector to the first registered handler that
// supports its leading verb.
type Router struct {
	help     Handler
	handlers []Handler
	logger   *logrus.Entry
}

// NewRouter registers handlers in order. help answers empty input and
// provides the text appended to unknown-verb failures; it is matched like
// any other handler when it is also listed in handlers.
func NewRouter(logger *logrus.Entry, help Handler, handlers ...Handler) *Router {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Router{
		help:     help,
		handlers: handlers,
		logger:   logger.WithField("sub-component", "router"),
	}
}

// Dispatch runs the command described by args. The handler's Response is
// returned unchanged.
func (r *Router) Dispatch(args []string) Response {
	if len(args) == 0 {
		return r.help.Handle([]string{"help"})
	}

	verb := args[0]
	for _, h := range r.handlers {
		if h.Supports(verb) {
			r.logger.WithFields(logrus.Fields{
				"verb": verb,
				"args": len(args) - 1,
			}).Debug("Dispatching command")
			return h.Handle(args)
		}
	}

	r.logger.WithField("verb", verb).Debug("No handler for verb")
	return r.unknown(verb)
}

func (r *Router) unknown(verb string) Response {
	var b strings.Builder
	fmt.Fprintf(&b, "Invalid command %q.", verb)
	if s := suggest(verb, r.suggestable()); s != "" {
		fmt.Fprintf(&b, " Did you mean %q?", s)
	}
	if help := r.help.Handle([]string{"help"}).Text(); help != "" {
		b.WriteString("\n\n")
		b.WriteString(help)
	}
	return Fail(b.String())
}

// Verbs lists every verb the registered handlers declare, in registration
// order.
func (r *Router) Verbs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, h := range r.handlers {
		lister, ok := h.(interface{ Verbs() []string })
		if !ok {
			continue
		}
		for _, v := range lister.Verbs() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// suggestable lists the verbs worth proposing as a correction. Flag
// aliases such as --help are left out.
func (r *Router) suggestable() []string {
	var out []string
	for _, v := range r.Verbs() {
		if !strings.HasPrefix(v, "-") {
			out = append(out, v)
		}
	}
	return out
}

// suggest returns the candidate closest to input, or "" when nothing is
// close enough. Subsequence matches ("ini" for "init") are preferred over
// plain edit distance ("inti" for "init").
func suggest(input string, candidates []string) string {
	input = strings.TrimSpace(input)
	if input == "" || len(candidates) == 0 {
		return ""
	}

	if ranks := fuzzy.RankFindNormalizedFold(input, candidates); len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxSuggestionDistance+1
	lower := strings.ToLower(input)
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c)); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
