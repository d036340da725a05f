package store

import (
	"path"
	"strings"
)

// ResolveLoadPath resolves the raw argument of a load() call appearing in
// the scriptlet at currentPath into a pretty path rooted at the vexes
// directory. Paths starting with "./" resolve relative to currentPath's
// directory; paths starting with "../" walk up that many parents; anything
// else is treated as already rooted. Returns a *PathOutOfBoundsError if the
// walk climbs above the vexes directory root.
func ResolveLoadPath(currentPath, rawPath string) (string, error) {
	switch {
	case strings.HasPrefix(rawPath, "./"):
		rest := rawPath[len("./"):]
		components := strings.Split(currentPath, "/")
		parentDir := strings.Join(components[:len(components)-1], "/")
		return path.Clean(path.Join(parentDir, rest)), nil

	case rawPath == ".." || strings.HasPrefix(rawPath, "../"):
		rawComponents := strings.Split(rawPath, "/")
		parents := 0
		for parents < len(rawComponents) && rawComponents[parents] == ".." {
			parents++
		}

		currentComponents := strings.Split(currentPath, "/")
		if 1+parents > len(currentComponents) {
			return "", &PathOutOfBoundsError{Path: rawPath}
		}

		ancestor := currentComponents[:len(currentComponents)-(1+parents)]
		remaining := rawComponents[parents:]
		joined := append(append([]string{}, ancestor...), remaining...)
		return path.Clean(strings.Join(joined, "/")), nil

	default:
		return path.Clean(rawPath), nil
	}
}
