package resolver

import "strings"

// Separator is the path separator of the parameter store.
const Separator = "/"

// BasePath trims a single trailing separator from a root path.
func BasePath(root string) string {
	return strings.TrimSuffix(root, Separator)
}

// CanonicalPath strips one leading separator from a declared path and prepends exactly one.
// Only the first separator is stripped, so "//a" stays "//a".
func CanonicalPath(rel string) string {
	return Separator + strings.TrimPrefix(rel, Separator)
}

// QualifiedPath joins a root path and a declared path into the path looked up in the snapshot.
// An empty root yields the canonical declared path.
func QualifiedPath(root, rel string) string {
	return BasePath(root) + CanonicalPath(rel)
}
