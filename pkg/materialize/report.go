package materialize

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Report records what a single materialization run did. Paths are relative
// to the run's root and listed in visit order.
type Report struct {
	Root      string
	Created   []string
	Existing  []string
	Failed    map[string]error
	StartTime time.Time
	EndTime   time.Time
}

func NewReport(root string) *Report {
	return &Report{
		Root:      root,
		Failed:    make(map[string]error),
		StartTime: time.Now(),
	}
}

func (r *Report) AddError(path string, err error) {
	r.Failed[path] = err
}

func (r *Report) Complete() {
	r.EndTime = time.Now()
}

func (r *Report) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// OK reports whether every node was created or already present.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// FailedPaths returns the failed paths in sorted order.
func (r *Report) FailedPaths() []string {
	paths := make([]string, 0, len(r.Failed))
	for p := range r.Failed {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Summary is a one-line human readable digest of the run.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d created, %d existing", len(r.Created), len(r.Existing))
	if !r.OK() {
		fmt.Fprintf(&b, ", %d failed (%s)", len(r.Failed), strings.Join(r.FailedPaths(), ", "))
	}
	return b.String()
}

// Inspection is the result of a dry run. Missing paths can be created by
// Materialize; Blocked paths exist as something other than a directory or
// could not be inspected, and Materialize would fail on them.
type Inspection struct {
	Root    string
	Missing []string
	Blocked map[string]error
}

func NewInspection(root string) *Inspection {
	return &Inspection{
		Root:    root,
		Blocked: make(map[string]error),
	}
}

// OK reports whether every scheme directory is present.
func (i *Inspection) OK() bool {
	return len(i.Missing) == 0 && len(i.Blocked) == 0
}

// BlockedPaths returns the blocked paths in sorted order.
func (i *Inspection) BlockedPaths() []string {
	paths := make([]string, 0, len(i.Blocked))
	for p := range i.Blocked {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
