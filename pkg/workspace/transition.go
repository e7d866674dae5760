package workspace

import (
	"fmt"
	"strings"
)

// Transition computes the state that follows current when ev is applied.
// It is pure: guards that need the filesystem or the settings store are
// checked by Machine before calling it. On error the returned state is
// current, unchanged.
func Transition(current State, ev Event) (State, error) {
	switch ev.Kind {
	case EventInit:
		if !current.IsUninitialized() {
			return current, ErrAlreadyInitialized
		}
		if strings.TrimSpace(ev.Path) == "" {
			return current, ErrMissingOrInvalidPath
		}
		return Ready(ev.Path), nil

	case EventSet:
		switch {
		case current.IsUninitialized():
			return current, ErrNotInitialized
		case current.IsBusy():
			return current, busyError(current)
		}
		if strings.TrimSpace(ev.Path) == "" {
			return current, ErrMissingOrInvalidPath
		}
		return Ready(ev.Path), nil

	case EventBegin:
		switch {
		case current.IsUninitialized():
			return current, ErrNotInitialized
		case current.IsBusy():
			return current, busyError(current)
		}
		if ev.Op != OpCopy && ev.Op != OpMove {
			return current, fmt.Errorf("%w: unknown operation %q", ErrInvalidCommand, ev.Op)
		}
		return Busy(ev.Op, ev.Source, ev.Destination, current.Root), nil

	case EventComplete:
		if !current.IsBusy() {
			return current, fmt.Errorf("%w: nothing to complete while %s", ErrInvalidStateTransition, current.Kind)
		}
		return Ready(current.Root), nil

	case EventReset:
		switch {
		case current.IsUninitialized():
			return current, ErrNotInitialized
		case current.IsBusy():
			return current, busyError(current)
		}
		return Uninitialized(), nil
	}

	return current, fmt.Errorf("%w: unknown event %q", ErrInvalidStateTransition, ev.Kind)
}

func busyError(s State) error {
	return fmt.Errorf("%w: workspace is busy with %s", ErrInvalidStateTransition, s.Op)
}
