package scheme

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DateLayout is the strftime layout of the date component used by all
// content routines.
const DateLayout = "%Y/%Y-%m-%d"

// OtherType is the type directory for files that match no template type.
const OtherType = "other"

// RoutePath returns the directory, relative to the node itself, under which
// file would be filed according to the node's content routine. Nodes without
// a routine file everything directly into themselves and return "".
func (n *Node) RoutePath(when time.Time, file string) string {
	date := strftime.Format(DateLayout, when)
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	title := strings.TrimSpace(strings.TrimSuffix(base, ext))

	switch n.Content {
	case RoutineByDate:
		return filepath.FromSlash(date)
	case RoutineByDateAndType:
		return filepath.Join(n.fileType(title, ext), filepath.FromSlash(date))
	case RoutineByDateAndTitle:
		if title == "" {
			return filepath.FromSlash(date)
		}
		return filepath.FromSlash(date + " " + title)
	default:
		return ""
	}
}

// fileType picks the type directory for a file: a template type mentioned
// in the title wins, then the extension when the node knows it.
func (n *Node) fileType(title, ext string) string {
	lowerTitle := strings.ToLower(title)
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	var types []string
	if n.Template != nil {
		types = n.Template.Types
	}
	for _, t := range types {
		if t != "" && t != ext && strings.Contains(lowerTitle, strings.ToLower(t)) {
			return t
		}
	}
	if ext == "" {
		return OtherType
	}
	for _, t := range types {
		if strings.EqualFold(t, ext) {
			return t
		}
	}
	if n.Prefers(ext) {
		return ext
	}
	return OtherType
}
