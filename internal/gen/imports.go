package gen

import (
	"cmp"
	"fmt"
	"go/token"
	"maps"
	"slices"
	"strings"
	"unicode"

	"mock-generator/internal/common"
	"mock-generator/internal/descriptor"
)

// importData is one import line of a generated file.
type importData struct {
	Name string
	Path string
	// Alias is set when Name must be spelled out.
	Alias bool
}

// importSet assigns file-local names to the packages a generated file
// refers to. The first package claiming a name keeps it; later packages
// with the same name get an alias.
type importSet struct {
	byPath map[string]string
	byName map[string]string
}

func newImportSet() *importSet {
	return &importSet{
		byPath: make(map[string]string),
		byName: make(map[string]string),
	}
}

// add registers path and returns its local name. An empty name falls back
// to the last path element.
func (s *importSet) add(path, name string) string {
	if path == "" {
		return ""
	}

	if local, ok := s.byPath[path]; ok {
		return local
	}

	if name == "" {
		name = identifier(common.PkgAlias(path))
	}

	local := name
	if _, taken := s.byName[local]; taken {
		base := aliasFor(path, name)
		local = base

		for i := 2; s.byName[local] != ""; i++ {
			local = fmt.Sprintf("%s%d", base, i)
		}
	}

	s.byPath[path] = local
	s.byName[local] = path

	return local
}

func (s *importSet) addRef(r *descriptor.TypeRef) {
	if r == nil {
		return
	}

	for _, imp := range r.Imports {
		s.add(imp.Path, imp.Name)
	}
}

func (s *importSet) addParams(params []descriptor.Param) {
	for i := range params {
		s.addRef(&params[i].Type)
	}
}

// names returns the local names in use.
func (s *importSet) names() []string {
	return slices.Sorted(maps.Keys(s.byName))
}

// lines returns the import lines sorted by path.
func (s *importSet) lines() []importData {
	out := make([]importData, 0, len(s.byPath))
	for path, name := range s.byPath {
		out = append(out, importData{Name: name, Path: path, Alias: name != common.PkgAlias(path)})
	}

	slices.SortFunc(out, func(a, b importData) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return out
}

// typeName renders r with the file's local package names. References
// without a path-qualified form render as Name.
func (s *importSet) typeName(r descriptor.TypeRef) string {
	if r.Qualified == "" {
		return r.Name
	}

	if len(r.Imports) == 0 {
		return r.Qualified
	}

	imports := slices.Clone(r.Imports)
	slices.SortFunc(imports, func(a, b descriptor.Import) int {
		return cmp.Compare(len(b.Path), len(a.Path))
	})

	q := r.Qualified

	var b strings.Builder

	for i := 0; i < len(q); {
		if i == 0 || !isPathByte(q[i-1]) {
			if imp, ok := qualifierAt(q[i:], imports); ok {
				b.WriteString(s.add(imp.Path, imp.Name))
				b.WriteByte('.')
				i += len(imp.Path) + 1

				continue
			}
		}

		b.WriteByte(q[i])
		i++
	}

	return b.String()
}

// qualifierAt returns the import whose path qualifies the identifier at
// the start of s. imports are ordered longest path first.
func qualifierAt(s string, imports []descriptor.Import) (descriptor.Import, bool) {
	for _, imp := range imports {
		if strings.HasPrefix(s, imp.Path+".") {
			return imp, true
		}
	}

	return descriptor.Import{}, false
}

func isPathByte(c byte) bool {
	return c == '_' || c == '/' || c == '-' || c == '~' ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// aliasFor derives an alias for a package whose name is taken:
//   - "math/rand/v2" (rand) -> "randv2"
//   - "example.com/calc-v2" (calc) -> "calcv2"
//   - "crypto/rand" (rand) -> "cryptorand"
func aliasFor(path, name string) string {
	elems := strings.Split(path, "/")

	last := identifier(elems[len(elems)-1])

	switch {
	case last != name && strings.HasPrefix(last, name):
		return last
	case last != name:
		return identifier(name + last)
	case len(elems) > 1:
		return identifier(elems[len(elems)-2] + name)
	}

	return name + "pkg"
}

// identifier lower-cases s and drops characters not allowed in a Go
// identifier.
func identifier(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	id := b.String()
	if id == "" || unicode.IsDigit(rune(id[0])) || token.IsKeyword(id) {
		id = "pkg" + id
	}

	return id
}
