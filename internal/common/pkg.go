package common

import (
	"path"
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// QualifiedName joins a namespace and a name with a dot.
// An empty namespace yields the bare name.
func QualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + "." + name
}

// Capitalize upper-cases the first byte of an ASCII identifier.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
