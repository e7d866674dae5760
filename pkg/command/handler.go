package command

import (
	"golang.org/x/text/cases"
)

// Handler implements one or more verbs.
type Handler interface {
	Supports(verb string) bool
	Handle(args []string) Response
}

// verbs is embedded by handlers to answer Supports for a fixed set of
// verbs, compared case-insensitively.
type verbs []string

func (v verbs) Supports(verb string) bool {
	folded := fold(verb)
	for _, name := range v {
		if fold(name) == folded {
			return true
		}
	}
	return false
}

// Verbs lists the verbs in declaration order.
func (v verbs) Verbs() []string {
	return append([]string(nil), v...)
}

// fold builds a fresh Caser per call; a Caser is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
