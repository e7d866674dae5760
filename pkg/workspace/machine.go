package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/miiv/pkg/lock"
	"github.com/mattsolo1/miiv/pkg/materialize"
	"github.com/mattsolo1/miiv/pkg/scheme"
	"github.com/mattsolo1/miiv/pkg/settings"
)

// Change is one committed transition
type Change struct {
	From  State
	To    State
	Event Event
	At    time.Time
}

// Machine owns the workspace lifecycle state. Every operation reads the
// current state, applies the transition, performs its effects and persists
// the workspace root as one critical section.
type Machine struct {
	mu        sync.Mutex
	state     State
	store     settings.Store
	scheme    *scheme.Node
	builder   *materialize.Materializer
	fileLock  *lock.FileLock
	logger    *logrus.Entry
	history   []Change
	listeners []func(Change)
	now       func() time.Time
}

// Option configures a Machine
type Option func(*Machine)

// WithLogger sets the logger used for transitions.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFileLock additionally serializes transitions across processes with
// an advisory lock on path.
func WithFileLock(path string) Option {
	return func(m *Machine) {
		m.fileLock = lock.NewFileLock(path)
	}
}

// NewMachine creates a machine for the given scheme. When the store already
// records a workspace root the machine starts Ready on it, otherwise
// Uninitialized.
func NewMachine(store settings.Store, root *scheme.Node, builder *materialize.Materializer, opts ...Option) (*Machine, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	if root == nil {
		return nil, fmt.Errorf("scheme is required")
	}

	m := &Machine{
		state:   Uninitialized(),
		store:   store,
		scheme:  root,
		builder: builder,
		logger:  logrus.NewEntry(logrus.New()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithField("sub-component", "state-machine")
	if m.builder == nil {
		m.builder = materialize.New(m.logger)
	}

	if _, err := m.sync(); err != nil {
		return nil, err
	}
	return m, nil
}

// Scheme returns the scheme the machine materializes.
func (m *Machine) Scheme() *scheme.Node {
	return m.scheme
}

// State returns the in-memory state without consulting the store.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current reconciles with the store and returns the resulting state.
func (m *Machine) Current() (State, error) {
	release, err := m.enter()
	if err != nil {
		return State{}, err
	}
	defer release()

	if _, err := m.sync(); err != nil {
		return State{}, err
	}
	return m.state, nil
}

// Initialized reports whether the store records a workspace root.
func (m *Machine) Initialized() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok, err := m.store.Get(settings.KeyWorkspaceDir)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", settings.KeyWorkspaceDir, err)
	}
	return ok, nil
}

// Init materializes the scheme under path, records it as the workspace root
// and moves to Ready. It fails with ErrAlreadyInitialized when a root is
// already recorded. Directories that could not be created are listed in
// the report but do not fail the transition.
func (m *Machine) Init(path string) (*materialize.Report, error) {
	release, err := m.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	initialized, err := m.sync()
	if err != nil {
		return nil, err
	}
	if initialized {
		return nil, ErrAlreadyInitialized
	}

	root, err := ResolveDir(path)
	if err != nil {
		return nil, err
	}
	return m.relocate(InitEvent(root))
}

// Set moves an initialized workspace to path, materializing the scheme
// there. The previous root is left as it is.
func (m *Machine) Set(path string) (*materialize.Report, error) {
	release, err := m.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	initialized, err := m.sync()
	if err != nil {
		return nil, err
	}
	if !initialized {
		return nil, ErrNotInitialized
	}

	root, err := ResolveDir(path)
	if err != nil {
		return nil, err
	}
	return m.relocate(SetEvent(root))
}

// relocate applies an Init or Set event. Caller holds the critical section.
func (m *Machine) relocate(ev Event) (*materialize.Report, error) {
	next, err := Transition(m.state, ev)
	if err != nil {
		return nil, err
	}

	report, err := m.builder.Materialize(m.scheme, ev.Path)
	if err != nil {
		return nil, fmt.Errorf("materialize %s: %w", ev.Path, err)
	}
	if !report.OK() {
		m.logger.WithFields(logrus.Fields{
			"root":   ev.Path,
			"failed": report.FailedPaths(),
		}).Warn("Workspace materialized partially")
	}

	if err := m.store.Set(settings.KeyWorkspaceDir, ev.Path); err != nil {
		return report, fmt.Errorf("persist %s: %w", settings.KeyWorkspaceDir, err)
	}

	m.commit(next, ev)
	return report, nil
}

// Begin marks the workspace Busy with a transfer.
func (m *Machine) Begin(op Operation, source, destination string) error {
	return m.step(BeginEvent(op, source, destination), nil)
}

// Complete returns a Busy workspace to Ready on its previous root.
func (m *Machine) Complete() error {
	return m.step(CompleteEvent(), nil)
}

// Reset forgets the workspace root and returns to Uninitialized. Nothing on
// disk is touched.
func (m *Machine) Reset() error {
	return m.step(ResetEvent(), func() error {
		if err := m.store.Delete(settings.KeyWorkspaceDir); err != nil {
			return fmt.Errorf("delete %s: %w", settings.KeyWorkspaceDir, err)
		}
		return nil
	})
}

func (m *Machine) step(ev Event, effect func() error) error {
	release, err := m.enter()
	if err != nil {
		return err
	}
	defer release()

	if _, err := m.sync(); err != nil {
		return err
	}

	next, err := Transition(m.state, ev)
	if err != nil {
		return err
	}
	if effect != nil {
		if err := effect(); err != nil {
			return err
		}
	}

	m.commit(next, ev)
	return nil
}

// Inspect checks the current root against the scheme without writing.
func (m *Machine) Inspect() (*materialize.Inspection, error) {
	release, err := m.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	root, err := m.requireRoot()
	if err != nil {
		return nil, err
	}
	return m.builder.Plan(m.scheme, root)
}

// Repair materializes the scheme again under the current root of a Ready
// workspace. The state does not change.
func (m *Machine) Repair() (*materialize.Report, error) {
	release, err := m.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	root, err := m.requireRoot()
	if err != nil {
		return nil, err
	}
	if m.state.IsBusy() {
		return nil, busyError(m.state)
	}
	return m.builder.Materialize(m.scheme, root)
}

func (m *Machine) requireRoot() (string, error) {
	initialized, err := m.sync()
	if err != nil {
		return "", err
	}
	if !initialized {
		return "", ErrNotInitialized
	}
	return m.state.Root, nil
}

// History returns the committed transitions, oldest first.
func (m *Machine) History() []Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Change(nil), m.history...)
}

// OnChange registers fn to be called after every committed transition.
// Listeners run inside the critical section and must not call back into
// the Machine.
func (m *Machine) OnChange(fn func(Change)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Machine) commit(next State, ev Event) {
	change := Change{From: m.state, To: next, Event: ev, At: m.now()}
	m.state = next
	m.history = append(m.history, change)

	m.logger.WithFields(logrus.Fields{
		"event": ev.Kind,
		"from":  change.From.Kind,
		"to":    next.Kind,
		"root":  next.Root,
	}).Info("Workspace state changed")

	for _, fn := range m.listeners {
		fn(change)
	}
}

// sync aligns the in-memory state with the recorded workspace root, which
// another process may have changed. A Busy state is never overridden.
// Caller holds the critical section.
func (m *Machine) sync() (bool, error) {
	dir, ok, err := m.store.Get(settings.KeyWorkspaceDir)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", settings.KeyWorkspaceDir, err)
	}
	if m.state.IsBusy() {
		return ok, nil
	}

	switch {
	case ok && (m.state.IsUninitialized() || m.state.Root != dir):
		m.logger.WithField("root", dir).Debug("Restored workspace root from settings")
		m.state = Ready(dir)
	case !ok && m.state.IsReady():
		m.logger.Debug("Workspace root no longer recorded, resetting state")
		m.state = Uninitialized()
	}
	return ok, nil
}

func (m *Machine) enter() (func(), error) {
	m.mu.Lock()
	if m.fileLock == nil {
		return m.mu.Unlock, nil
	}

	if err := m.fileLock.Lock(); err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("lock workspace %s: %w", m.fileLock.Path(), err)
	}
	return func() {
		if err := m.fileLock.Unlock(); err != nil {
			m.logger.WithError(err).Warn("Failed to release workspace lock")
		}
		m.mu.Unlock()
	}, nil
}

// ResolveDir returns the absolute, cleaned form of path after checking that
// it names an existing directory.
func ResolveDir(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrMissingOrInvalidPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingOrInvalidPath, err)
	}

	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrPathNotExists, abs)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingOrInvalidPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrPathNotDirectory, abs)
	}
	return abs, nil
}
