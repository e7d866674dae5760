// Package materialize creates the directories described by a scheme tree.
package materialize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/miiv/pkg/scheme"
)

// DirPerm is the mode used for every directory the materializer creates.
const DirPerm os.FileMode = 0755

var (
	ErrDirectoryCreation = errors.New("directory creation failed")
	ErrInvalidRoot       = errors.New("invalid materialization root")
)

// Materializer turns a scheme tree into directories. A run is best-effort:
// a node that cannot be created is recorded in the report and its subtree
// is skipped, while its siblings are still processed.
type Materializer struct {
	logger *logrus.Entry
	mkdir  func(path string, perm os.FileMode) error
}

func New(logger *logrus.Entry) *Materializer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Materializer{
		logger: logger.WithField("sub-component", "materializer"),
		mkdir:  os.MkdirAll,
	}
}

// Materialize creates every missing directory of root's descendants below
// fsRoot. Existing directories are left untouched, so running it twice
// yields the same tree. The returned error is non-nil only when fsRoot
// itself is unusable, in which case nothing is created.
func (m *Materializer) Materialize(root *scheme.Node, fsRoot string) (*Report, error) {
	if err := checkRoot(fsRoot); err != nil {
		return nil, err
	}

	report := NewReport(fsRoot)
	if root != nil {
		for _, child := range root.Children {
			m.create(child, fsRoot, "", report)
		}
	}
	report.Complete()

	entry := m.logger.WithFields(logrus.Fields{
		"root":     fsRoot,
		"created":  len(report.Created),
		"existing": len(report.Existing),
		"failed":   len(report.Failed),
		"duration": report.Duration(),
	})
	if report.OK() {
		entry.Debug("Materialized scheme")
	} else {
		entry.Warn("Materialized scheme with failures")
	}
	return report, nil
}

func (m *Materializer) create(node *scheme.Node, parent, relParent string, report *Report) {
	if node == nil {
		return
	}
	rel := joinRel(relParent, node.Name)
	target := filepath.Join(parent, node.Name)

	if err := scheme.ValidateName(node.Name); err != nil {
		m.fail(report, rel, err)
		return
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		report.Existing = append(report.Existing, rel)
	case err == nil:
		m.fail(report, rel, fmt.Errorf("%s exists and is not a directory", target))
		return
	case errors.Is(err, os.ErrNotExist):
		if err := m.mkdir(target, DirPerm); err != nil {
			m.fail(report, rel, err)
			return
		}
		report.Created = append(report.Created, rel)
		m.logger.WithField("path", target).Debug("Created directory")
	default:
		m.fail(report, rel, err)
		return
	}

	for _, child := range node.Children {
		m.create(child, target, rel, report)
	}
}

func (m *Materializer) fail(report *Report, rel string, cause error) {
	err := fmt.Errorf("%w: %s: %v", ErrDirectoryCreation, rel, cause)
	report.AddError(rel, err)
	m.logger.WithError(cause).WithField("path", rel).Error("Failed to create directory, skipping subtree")
}

// Plan inspects fsRoot without writing anything. Absent directories, and
// everything below them, are listed as missing. A node whose path exists
// but is not a directory, or cannot be inspected, is blocked and its
// subtree is skipped, mirroring what Materialize would do.
func (m *Materializer) Plan(root *scheme.Node, fsRoot string) (*Inspection, error) {
	if err := checkRoot(fsRoot); err != nil {
		return nil, err
	}

	inspection := NewInspection(fsRoot)
	if root != nil {
		for _, child := range root.Children {
			inspect(child, fsRoot, "", inspection)
		}
	}
	return inspection, nil
}

func inspect(node *scheme.Node, parent, relParent string, inspection *Inspection) {
	if node == nil {
		return
	}
	rel := joinRel(relParent, node.Name)
	target := filepath.Join(parent, node.Name)

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, os.ErrNotExist):
		inspection.Missing = append(inspection.Missing, rel)
	case err != nil:
		inspection.Blocked[rel] = err
		return
	case !info.IsDir():
		inspection.Blocked[rel] = fmt.Errorf("%s exists and is not a directory", target)
		return
	}

	for _, child := range node.Children {
		inspect(child, target, rel, inspection)
	}
}

func checkRoot(fsRoot string) error {
	if strings.TrimSpace(fsRoot) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	info, err := os.Stat(fsRoot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, fsRoot)
	}
	return nil
}

func joinRel(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
