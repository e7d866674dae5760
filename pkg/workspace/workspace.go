package workspace

import (
	"fmt"
)

// Kind identifies which variant of State is active
type Kind string

const (
	KindUninitialized Kind = "uninitialized"
	KindReady         Kind = "ready"
	KindBusy          Kind = "busy"
)

// Operation is the file transfer a Busy workspace is performing
type Operation string

const (
	OpCopy Operation = "copy"
	OpMove Operation = "move"
)

// State is the lifecycle state of the workspace. Only the fields belonging
// to Kind are meaningful: Root for Ready and Busy, Op/Source/Destination
// for Busy. Build values with Uninitialized, Ready and Busy.
type State struct {
	Kind        Kind      `json:"kind" yaml:"kind"`
	Root        string    `json:"root,omitempty" yaml:"root,omitempty"`
	Op          Operation `json:"op,omitempty" yaml:"op,omitempty"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string    `json:"destination,omitempty" yaml:"destination,omitempty"`
}

func Uninitialized() State {
	return State{Kind: KindUninitialized}
}

func Ready(root string) State {
	return State{Kind: KindReady, Root: root}
}

// Busy keeps the root of the Ready state it came from so that completing
// the operation returns there.
func Busy(op Operation, source, destination, root string) State {
	return State{Kind: KindBusy, Root: root, Op: op, Source: source, Destination: destination}
}

func (s State) IsUninitialized() bool { return s.Kind == KindUninitialized || s.Kind == "" }
func (s State) IsReady() bool         { return s.Kind == KindReady }
func (s State) IsBusy() bool          { return s.Kind == KindBusy }

func (s State) String() string {
	switch s.Kind {
	case KindReady:
		return fmt.Sprintf("ready (%s)", s.Root)
	case KindBusy:
		return fmt.Sprintf("busy (%s %s -> %s)", s.Op, s.Source, s.Destination)
	default:
		return string(KindUninitialized)
	}
}

// EventKind names a requested transition
type EventKind string

const (
	EventInit     EventKind = "init"
	EventSet      EventKind = "set"
	EventBegin    EventKind = "begin"
	EventComplete EventKind = "complete"
	EventReset    EventKind = "reset"
)

// Event is a transition request together with its parameters
type Event struct {
	Kind        EventKind
	Path        string
	Op          Operation
	Source      string
	Destination string
}

func InitEvent(path string) Event { return Event{Kind: EventInit, Path: path} }
func SetEvent(path string) Event  { return Event{Kind: EventSet, Path: path} }
func BeginEvent(op Operation, source, destination string) Event {
	return Event{Kind: EventBegin, Op: op, Source: source, Destination: destination}
}
func CompleteEvent() Event { return Event{Kind: EventComplete} }
func ResetEvent() Event    { return Event{Kind: EventReset} }
