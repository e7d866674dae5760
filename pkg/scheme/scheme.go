// Package scheme describes the directory layout of a workspace and loads it
// from JSON, YAML or TOML files.
package scheme

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SupportedMajorVersion is the only schema_version_major this build understands.
const SupportedMajorVersion = 1

// ContentRoutine describes how files are filed below a scheme node
type ContentRoutine int

const (
	RoutineNone ContentRoutine = iota
	RoutineByDate
	RoutineByDateAndType
	RoutineByDateAndTitle
)

var routineTokens = map[ContentRoutine]string{
	RoutineByDate:         "version_controlled_by_date",
	RoutineByDateAndType:  "version_controlled_by_date_and_type",
	RoutineByDateAndTitle: "version_controlled_by_date_and_title",
}

// String returns the token used in scheme files.
func (r ContentRoutine) String() string {
	if tok, ok := routineTokens[r]; ok {
		return tok
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (r ContentRoutine) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. JSON, YAML and TOML
// decoders all go through it, so token parsing lives in one place.
func (r *ContentRoutine) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*r = RoutineNone
		return nil
	}
	for routine, tok := range routineTokens {
		if tok == s {
			*r = routine
			return nil
		}
	}
	return fmt.Errorf("unknown content routine: %s", s)
}

// Template holds the additional structuring rules of a node.
type Template struct {
	Types []string `json:"type" yaml:"type" toml:"type"`
}

// Node is one directory in the scheme tree. A loaded tree is never mutated.
type Node struct {
	Name               string         `json:"name" yaml:"name" toml:"name"`
	SchemaVersionMajor int            `json:"schema_version_major" yaml:"schema_version_major" toml:"schema_version_major"`
	SchemaVersionMinor int            `json:"schema_version_minor" yaml:"schema_version_minor" toml:"schema_version_minor"`
	Purpose            string         `json:"purpose" yaml:"purpose" toml:"purpose"`
	PreferredFileTypes []string       `json:"preferredFileTypes" yaml:"preferredFileTypes" toml:"preferredFileTypes"`
	Children           []*Node        `json:"children" yaml:"children" toml:"children"`
	Content            ContentRoutine `json:"content" yaml:"content" toml:"content"`
	Template           *Template      `json:"template" yaml:"template" toml:"template"`
}

// Version returns the schema version as "major.minor".
func (n *Node) Version() string {
	return fmt.Sprintf("%d.%d", n.SchemaVersionMajor, n.SchemaVersionMinor)
}

// Prefers reports whether the node lists the given file type (extension
// without the dot, or a category name) among its preferred types.
func (n *Node) Prefers(fileType string) bool {
	fileType = strings.ToLower(strings.TrimPrefix(fileType, "."))
	for _, t := range n.PreferredFileTypes {
		if strings.ToLower(strings.TrimPrefix(t, ".")) == fileType {
			return true
		}
	}
	return false
}

// Validate checks the schema version of the root and the shape of the whole
// tree. Node names must be usable as a single path element and unique among
// their siblings.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("scheme is empty")
	}
	if n.SchemaVersionMajor != SupportedMajorVersion {
		return fmt.Errorf("unsupported schema version %s (supported: %d.x)", n.Version(), SupportedMajorVersion)
	}
	if n.SchemaVersionMinor < 0 {
		return fmt.Errorf("invalid schema_version_minor %d", n.SchemaVersionMinor)
	}
	return validateChildren(n, nil)
}

func validateChildren(n *Node, parents []string) error {
	seen := make(map[string]bool, len(n.Children))
	for i, child := range n.Children {
		if child == nil {
			return fmt.Errorf("%s: child %d is empty", displayPath(parents), i)
		}
		if err := ValidateName(child.Name); err != nil {
			return fmt.Errorf("%s: child %d: %w", displayPath(parents), i, err)
		}
		if seen[child.Name] {
			return fmt.Errorf("%s: duplicate child name %q", displayPath(parents), child.Name)
		}
		seen[child.Name] = true

		if err := validateChildren(child, append(parents, child.Name)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateName rejects names that are not a single, non-special path element.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("node name cannot be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid node name %q", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("node name %q must not contain path separators", name)
	}
	return nil
}

func displayPath(parts []string) string {
	if len(parts) == 0 {
		return "<root>"
	}
	return strings.Join(parts, "/")
}

// Walk visits every descendant of n depth-first in declared order. path is
// the list of names from n down to the visited node.
func (n *Node) Walk(fn func(path []string, node *Node) error) error {
	return walk(n, nil, fn)
}

func walk(n *Node, parents []string, fn func([]string, *Node) error) error {
	for _, child := range n.Children {
		path := append(append([]string(nil), parents...), child.Name)
		if err := fn(path, child); err != nil {
			return err
		}
		if err := walk(child, path, fn); err != nil {
			return err
		}
	}
	return nil
}

// Paths returns the slash separated paths of all descendants in visit order.
func (n *Node) Paths() []string {
	var paths []string
	_ = n.Walk(func(path []string, _ *Node) error {
		paths = append(paths, strings.Join(path, "/"))
		return nil
	})
	return paths
}

// Find resolves a slash separated path of node names relative to n.
func (n *Node) Find(path string) (*Node, bool) {
	current := n
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		var next *Node
		for _, child := range current.Children {
			if strings.EqualFold(child.Name, part) {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}
