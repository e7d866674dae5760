package command

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeHandler struct {
	verbs
	name  string
	calls [][]string
}

func (f *fakeHandler) Handle(args []string) Response {
	f.calls = append(f.calls, args)
	return OK(f.name)
}

func quietEntry() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}

func TestRouterFirstMatchWins(t *testing.T) {
	first := &fakeHandler{verbs: verbs{"sync"}, name: "first"}
	second := &fakeHandler{verbs: verbs{"sync", "pull"}, name: "second"}
	router := NewRouter(quietEntry(), NewHelpHandler(), first, second)

	resp := router.Dispatch([]string{"sync", "a"})
	assert.Equal(t, OK("first"), resp)
	assert.Equal(t, [][]string{{"sync", "a"}}, first.calls)
	assert.Empty(t, second.calls)

	resp = router.Dispatch([]string{"pull"})
	assert.Equal(t, OK("second"), resp)
}

func TestRouterVerbsAreCaseInsensitive(t *testing.T) {
	h := &fakeHandler{verbs: verbs{"init"}, name: "init"}
	router := NewRouter(quietEntry(), NewHelpHandler(), h)

	assert.True(t, router.Dispatch([]string{"INIT", "/tmp"}).Success)
	assert.Len(t, h.calls, 1)
}

func TestRouterEmptyArgsShowsHelp(t *testing.T) {
	h := &fakeHandler{verbs: verbs{"init"}, name: "init"}
	router := NewRouter(quietEntry(), NewHelpHandler(), h)

	resp := router.Dispatch(nil)
	assert.True(t, resp.Success)
	assert.Equal(t, HelpText, resp.Message)
	assert.Empty(t, resp.Error)
	assert.Empty(t, h.calls)
}

func TestRouterUnknownVerb(t *testing.T) {
	router := NewRouter(quietEntry(), NewHelpHandler(),
		&fakeHandler{verbs: verbs{"init"}},
		&fakeHandler{verbs: verbs{"status"}},
	)

	resp := router.Dispatch([]string{"inti", "/tmp"})
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Message)
	assert.True(t, strings.HasPrefix(resp.Error, `Invalid command "inti". Did you mean "init"?`))
	assert.Contains(t, resp.Error, HelpText)

	resp = router.Dispatch([]string{"xyzzy"})
	assert.False(t, resp.Success)
	assert.NotContains(t, resp.Error, "Did you mean")
}

func TestRouterDoesNotSuggestFlags(t *testing.T) {
	router := NewRouter(quietEntry(), NewHelpHandler(),
		&fakeHandler{verbs: verbs{"init"}},
		NewHelpHandler(),
	)

	resp := router.Dispatch([]string{"-x"})
	assert.False(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Error, `Invalid command "-x".`))
	assert.NotContains(t, resp.Error, "Did you mean")

	resp = router.Dispatch([]string{"hepl"})
	assert.Contains(t, resp.Error, `Did you mean "help"?`)
}

func TestRouterVerbs(t *testing.T) {
	router := NewRouter(quietEntry(), NewHelpHandler(),
		&fakeHandler{verbs: verbs{"copy", "move"}},
		&fakeHandler{verbs: verbs{"move"}},
		NewHelpHandler(),
	)
	assert.Equal(t, []string{"copy", "move", "help", "--help", "-h"}, router.Verbs())
}

func TestSuggest(t *testing.T) {
	candidates := []string{"init", "set", "copy", "move", "status", "reset", "doctor", "tree", "route", "help"}

	tests := []struct {
		input string
		want  string
	}{
		{"ini", "init"},
		{"inti", "init"},
		{"stat", "status"},
		{"DOCTR", "doctor"},
		{"rotue", "route"},
		{"completely-unrelated", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, suggest(tt.input, candidates), "input %q", tt.input)
	}
}

func TestResponseConstructors(t *testing.T) {
	ok := OK("done")
	assert.True(t, ok.Success)
	assert.Equal(t, "done", ok.Text())
	assert.Empty(t, ok.Error)

	failed := Fail("")
	assert.False(t, failed.Success)
	assert.Empty(t, failed.Message)
	assert.NotEmpty(t, failed.Error)

	assert.Equal(t, "bad: 3", Failf("bad: %d", 3).Text())
}
