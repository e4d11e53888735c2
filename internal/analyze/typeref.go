package analyze

import (
	"fmt"
	"go/types"
	"maps"
	"slices"
	"strings"

	"mock-generator/internal/common"
	"mock-generator/internal/descriptor"
)

// qualifier renders package-qualified names with the package name only,
// e.g. "context.Context".
func qualifier(pkg *types.Package) string {
	return pkg.Name()
}

// pathQualifier renders package-qualified names with the import path,
// e.g. "crypto/rand.Reader".
func pathQualifier(pkg *types.Package) string {
	return pkg.Path()
}

// typeRef describes a Go type as a descriptor.TypeRef.
func typeRef(t types.Type) descriptor.TypeRef {
	return descriptor.TypeRef{
		Name:      types.TypeString(t, qualifier),
		Short:     shortName(t),
		Qualified: types.TypeString(t, pathQualifier),
		Imports:   importsOf(t),
	}
}

// resultRef describes a signature's results. Nil means no results.
func resultRef(results *types.Tuple) *descriptor.TypeRef {
	switch results.Len() {
	case 0:
		return nil
	case 1:
		r := typeRef(results.At(0).Type())
		return &r
	}

	ref := &descriptor.TypeRef{}
	names := make([]string, 0, results.Len())
	qualified := make([]string, 0, results.Len())

	var short strings.Builder

	for i := 0; i < results.Len(); i++ {
		elem := typeRef(results.At(i).Type())
		names = append(names, elem.Name)
		qualified = append(qualified, elem.Qualified)
		short.WriteString(elem.Short)
		ref.Elems = append(ref.Elems, elem)
		ref.Imports = mergeImports(ref.Imports, elem.Imports)
	}

	ref.Name = "(" + strings.Join(names, ", ") + ")"
	ref.Qualified = "(" + strings.Join(qualified, ", ") + ")"
	ref.Short = short.String()

	return ref
}

// shortName returns the identifier used for t in overload slot names:
//   - "int" -> "Int"
//   - "*calculator.Result" -> "Result"
//   - "error" -> "Error"
//   - "[]string" -> "StringSlice"
//   - "map[string]int" -> "MapStringInt"
func shortName(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return common.Capitalize(tt.Name())
	case *types.Named:
		return common.Capitalize(tt.Obj().Name())
	case *types.TypeParam:
		return tt.Obj().Name()
	case *types.Pointer:
		return shortName(tt.Elem())
	case *types.Slice:
		return shortName(tt.Elem()) + "Slice"
	case *types.Array:
		return shortName(tt.Elem()) + "Array"
	case *types.Map:
		return "Map" + shortName(tt.Key()) + shortName(tt.Elem())
	case *types.Chan:
		return "Chan" + shortName(tt.Elem())
	case *types.Signature:
		return "Func"
	case *types.Interface:
		if tt.Empty() {
			return "Any"
		}

		return "Interface"
	case *types.Struct:
		return "Struct"
	default:
		return common.Capitalize(types.TypeString(t, qualifier))
	}
}

// params describes a signature's parameters. Blank and unnamed
// parameters are named after their position.
func params(sig *types.Signature) []descriptor.Param {
	tuple := sig.Params()

	out := make([]descriptor.Param, 0, tuple.Len())
	for i := 0; i < tuple.Len(); i++ {
		v := tuple.At(i)

		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}

		ref := typeRef(v.Type())
		if sig.Variadic() && i == tuple.Len()-1 {
			if s, ok := v.Type().(*types.Slice); ok {
				ref = typeRef(s.Elem())
				ref.Name = "..." + ref.Name
				ref.Qualified = "..." + ref.Qualified
				ref.Short += "Variadic"
			}
		}

		out = append(out, descriptor.Param{Name: name, Type: ref})
	}

	return out
}

// importsOf returns the packages of the named types t refers to, sorted
// by path. Nil when t refers to none.
func importsOf(t types.Type) []descriptor.Import {
	seen := make(map[string]string)
	collectImports(t, seen, make(map[types.Type]bool))

	if len(seen) == 0 {
		return nil
	}

	out := make([]descriptor.Import, 0, len(seen))
	for _, path := range slices.Sorted(maps.Keys(seen)) {
		out = append(out, descriptor.Import{Path: path, Name: seen[path]})
	}

	return out
}

func collectImports(t types.Type, seen map[string]string, visited map[types.Type]bool) {
	if visited[t] {
		return
	}

	visited[t] = true

	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		if pkg := tt.Obj().Pkg(); pkg != nil {
			seen[pkg.Path()] = pkg.Name()
		}

		for i := 0; i < tt.TypeArgs().Len(); i++ {
			collectImports(tt.TypeArgs().At(i), seen, visited)
		}
	case *types.Pointer:
		collectImports(tt.Elem(), seen, visited)
	case *types.Slice:
		collectImports(tt.Elem(), seen, visited)
	case *types.Array:
		collectImports(tt.Elem(), seen, visited)
	case *types.Chan:
		collectImports(tt.Elem(), seen, visited)
	case *types.Map:
		collectImports(tt.Key(), seen, visited)
		collectImports(tt.Elem(), seen, visited)
	case *types.Signature:
		for _, tuple := range []*types.Tuple{tt.Params(), tt.Results()} {
			for i := 0; i < tuple.Len(); i++ {
				collectImports(tuple.At(i).Type(), seen, visited)
			}
		}
	case *types.Struct:
		for i := 0; i < tt.NumFields(); i++ {
			collectImports(tt.Field(i).Type(), seen, visited)
		}
	case *types.Interface:
		for i := 0; i < tt.NumMethods(); i++ {
			collectImports(tt.Method(i).Type(), seen, visited)
		}
	}
}

// mergeImports returns the union of a and b sorted by path.
func mergeImports(a, b []descriptor.Import) []descriptor.Import {
	if len(b) == 0 {
		return a
	}

	merged := append(append([]descriptor.Import(nil), a...), b...)
	slices.SortFunc(merged, func(x, y descriptor.Import) int {
		return strings.Compare(x.Path, y.Path)
	})

	return slices.CompactFunc(merged, func(x, y descriptor.Import) bool {
		return x.Path == y.Path
	})
}
