package materialize

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/miiv/pkg/scheme"
)

func testScheme() *scheme.Node {
	return &scheme.Node{
		Name:               "root",
		SchemaVersionMajor: 1,
		Children: []*scheme.Node{
			{Name: "01 Personal"},
			{
				Name: "04 Software",
				Children: []*scheme.Node{
					{Name: "01 Windows"},
					{Name: "02 Linux"},
					{Name: "03 Mac"},
					{Name: "04 Android"},
				},
			},
			{
				Name:     "99 Archive",
				Children: []*scheme.Node{{Name: "2024", Children: []*scheme.Node{{Name: "Q1"}}}},
			},
		},
	}
}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}

// listDirs returns every directory below root as a slash separated relative path.
func listDirs(t *testing.T, root string) []string {
	t.Helper()
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root || !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		dirs = append(dirs, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(dirs)
	return dirs
}

func TestMaterializeCreatesTree(t *testing.T) {
	root := t.TempDir()
	m := New(quietLogger())

	report, err := m.Materialize(testScheme(), root)
	require.NoError(t, err)
	require.True(t, report.OK())

	want := []string{
		"01 Personal",
		"04 Software",
		"04 Software/01 Windows",
		"04 Software/02 Linux",
		"04 Software/03 Mac",
		"04 Software/04 Android",
		"99 Archive",
		"99 Archive/2024",
		"99 Archive/2024/Q1",
	}
	assert.Equal(t, want, listDirs(t, root))
	assert.Equal(t, "01 Personal", report.Created[0], "children are visited in declared order")
	assert.Len(t, report.Created, len(want))
	assert.Empty(t, report.Existing)
}

func TestMaterializeIsIdempotent(t *testing.T) {
	root := t.TempDir()
	m := New(quietLogger())

	_, err := m.Materialize(testScheme(), root)
	require.NoError(t, err)

	marker := filepath.Join(root, "04 Software", "02 Linux", "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("data"), 0644))
	before := listDirs(t, root)

	report, err := m.Materialize(testScheme(), root)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Empty(t, report.Created)
	assert.Len(t, report.Existing, len(before))
	assert.Equal(t, before, listDirs(t, root))

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestMaterializeSkipsFailedSubtree(t *testing.T) {
	root := t.TempDir()
	// A file where "04 Software" should be blocks that whole subtree.
	require.NoError(t, os.WriteFile(filepath.Join(root, "04 Software"), nil, 0644))

	report, err := New(quietLogger()).Materialize(testScheme(), root)
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Equal(t, []string{"04 Software"}, report.FailedPaths())
	assert.True(t, errors.Is(report.Failed["04 Software"], ErrDirectoryCreation))
	assert.Equal(t, []string{"01 Personal", "99 Archive", "99 Archive/2024", "99 Archive/2024/Q1"}, listDirs(t, root))
	assert.Contains(t, report.Summary(), "1 failed")
}

func TestMaterializeRecordsMkdirErrors(t *testing.T) {
	root := t.TempDir()
	m := New(quietLogger())
	m.mkdir = func(path string, perm os.FileMode) error {
		if strings.HasSuffix(path, "02 Linux") {
			return errors.New("disk full")
		}
		return os.MkdirAll(path, perm)
	}

	report, err := m.Materialize(testScheme(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"04 Software/02 Linux"}, report.FailedPaths())
	assert.Contains(t, report.Failed["04 Software/02 Linux"].Error(), "disk full")
	assert.DirExists(t, filepath.Join(root, "04 Software", "03 Mac"))
	assert.NoDirExists(t, filepath.Join(root, "04 Software", "02 Linux"))
}

func TestMaterializeRejectsInvalidRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	for _, root := range []string{"", filepath.Join(dir, "missing"), file} {
		_, err := New(quietLogger()).Materialize(testScheme(), root)
		assert.ErrorIs(t, err, ErrInvalidRoot, "root %q", root)
	}
	assert.NoDirExists(t, filepath.Join(dir, "missing"))
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	m := New(quietLogger())

	inspection, err := m.Plan(testScheme(), root)
	require.NoError(t, err)
	assert.Len(t, inspection.Missing, 9)
	assert.Empty(t, inspection.Blocked)
	assert.False(t, inspection.OK())
	assert.Empty(t, listDirs(t, root), "plan must not write")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "04 Software", "01 Windows"), 0755))
	inspection, err = m.Plan(testScheme(), root)
	require.NoError(t, err)
	assert.NotContains(t, inspection.Missing, "04 Software")
	assert.NotContains(t, inspection.Missing, "04 Software/01 Windows")
	assert.Contains(t, inspection.Missing, "04 Software/02 Linux")

	_, err = m.Materialize(testScheme(), root)
	require.NoError(t, err)
	inspection, err = m.Plan(testScheme(), root)
	require.NoError(t, err)
	assert.True(t, inspection.OK())
}

func TestPlanReportsFileInPlaceOfDirectory(t *testing.T) {
	root := t.TempDir()
	m := New(quietLogger())

	_, err := m.Materialize(testScheme(), root)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "04 Software")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "04 Software"), []byte("x"), 0644))

	inspection, err := m.Plan(testScheme(), root)
	require.NoError(t, err)
	assert.False(t, inspection.OK())
	assert.Empty(t, inspection.Missing)
	assert.Equal(t, []string{"04 Software"}, inspection.BlockedPaths(), "children of a blocked node are skipped")

	report, err := m.Materialize(testScheme(), root)
	require.NoError(t, err)
	assert.Equal(t, inspection.BlockedPaths(), report.FailedPaths())
}
