package manifest

import (
	"errors"
	"fmt"
	"strings"

	"mock-generator/internal/descriptor"
	"mock-generator/internal/diagnostic"
	"mock-generator/internal/match"
	"mock-generator/internal/plan"
)

// ErrInvalidManifest is returned by Link when validation reports errors.
var ErrInvalidManifest = errors.New("invalid manifest")

// Link validates f and links its types into a Snapshot. Warnings are
// returned alongside a successful link.
func Link(f *File) (*descriptor.Snapshot, *diagnostic.Diagnostics, error) {
	snap, res := check(f)
	if res.HasErrors() {
		return nil, res, fmt.Errorf("%w: %w", ErrInvalidManifest, res.Error())
	}

	return snap, res, nil
}

// Candidates returns the mocks requested by f, in file order.
func Candidates(f *File) []plan.Candidate {
	out := make([]plan.Candidate, 0, len(f.Mocks))
	for _, m := range f.Mocks {
		out = append(out, plan.Candidate{Name: m.Name, Target: m.Target, Unit: m.Unit})
	}

	return out
}

// PlanConfig applies the manifest config on top of base.
func PlanConfig(f *File, base plan.Config) plan.Config {
	c := f.Config
	if c.ReturnDefaultIfNotMocked {
		base.ReturnDefaultIfNotMocked = true
	}

	if c.FieldPrefix != "" {
		base.FieldPrefix = c.FieldPrefix
	}

	if c.NamePostfix != nil {
		base.NamePostfix = *c.NamePostfix
	}

	if c.Strict {
		base.StrictMode = true
	}

	if c.MaxSuggestions > 0 {
		base.MaxSuggestions = c.MaxSuggestions
	}

	return base
}

// linker turns validated TypeDefs into descriptors, reporting broken
// references as it goes.
type linker struct {
	file  *File
	res   *diagnostic.Diagnostics
	snap  *descriptor.Snapshot
	types []*descriptor.Type // parallel to file.Types; nil for duplicates
}

func newLinker(f *File, res *diagnostic.Diagnostics) *linker {
	return &linker{
		file:  f,
		res:   res,
		snap:  descriptor.NewSnapshot(),
		types: make([]*descriptor.Type, len(f.Types)),
	}
}

func (l *linker) link() *descriptor.Snapshot {
	for i := range l.file.Types {
		l.declare(i)
	}

	for i := range l.file.Types {
		if l.types[i] != nil {
			l.connect(i)
		}
	}

	for i, t := range l.types {
		if t != nil && baseCycle(t) {
			l.errorf(typePath(i), "base chain of %s is cyclic", t)
		}
	}

	return l.snap
}

func (l *linker) declare(i int) {
	def := &l.file.Types[i]
	access, _ := descriptor.ParseAccessibility(def.Access)

	t := &descriptor.Type{
		ID:       descriptor.TypeID{Namespace: def.Namespace, Name: def.Name},
		Kind:     descriptor.ParseTypeKind(def.Kind),
		Abstract: def.Abstract,
		Builtin:  def.Builtin,
		Access:   access,
		Assembly: def.Assembly,
	}

	if err := l.snap.Add(t); err != nil {
		l.errorf(typePath(i), "%v", err)
		return
	}

	l.types[i] = t
}

func (l *linker) connect(i int) {
	def := &l.file.Types[i]
	t := l.types[i]
	path := typePath(i)

	if def.Base != "" {
		switch base := l.resolve(path+".base", def.Base); {
		case base == nil:
		case t.IsInterface():
			l.errorf(path+".base", "interface %s cannot have a base type", t)
		case !base.IsClass():
			l.errorf(path+".base", "base %s of %s is not a class", base, t)
		default:
			t.Base = base
		}
	}

	for j, ref := range def.Interfaces {
		ipath := fmt.Sprintf("%s.interfaces[%d]", path, j)

		iface := l.resolve(ipath, ref)
		if iface == nil {
			continue
		}

		if !iface.IsInterface() {
			l.errorf(ipath, "%s is not an interface", iface)
			continue
		}

		t.Interfaces = append(t.Interfaces, iface)
	}

	for j := range def.Members {
		if m := l.member(fmt.Sprintf("%s.members[%d]", path, j), t, &def.Members[j]); m != nil {
			t.Members = append(t.Members, m)
		}
	}
}

func (l *linker) member(path string, owner *descriptor.Type, def *MemberDef) *descriptor.Member {
	access, _ := descriptor.ParseAccessibility(def.Access)

	m := &descriptor.Member{
		Name:     def.Name,
		Access:   access,
		Static:   def.Static,
		Abstract: def.Abstract,
		Virtual:  def.Virtual,
		Override: def.Override,
		Sealed:   def.Sealed,
		Implicit: def.Implicit,
		Owner:    owner,
	}

	switch def.Kind {
	case MemberProperty:
		m.Kind = descriptor.MemberKindProperty
		m.Value = descriptor.TypeRef{Name: def.Type}
		m.Getter = accessor(def.Get)
		m.Setter = accessor(def.Set)

		if m.Getter == nil && m.Setter == nil {
			l.res.AddWarning(diagnostic.CodeInvalidManifest,
				fmt.Sprintf("property %s has no accessors", m), "", path)
		}

		return m

	case MemberConstructor:
		if owner.IsInterface() {
			l.errorf(path, "interface %s cannot declare a constructor", owner)
			return nil
		}

		m.Kind = descriptor.MemberKindMethod
		m.Constructor = true
		m.Params = params(def.Params)

		return m

	default:
		m.Kind = descriptor.MemberKindMethod
		m.Params = params(def.Params)
		m.Async = def.Async
		m.Returns = returnType(def.Returns)

		if m.Async {
			if m.Returns == nil {
				l.errorf(path, "async method %s has no return type", m)
				return nil
			}

			m.Returns.Awaited = awaitedType(def)
		}

		return m
	}
}

// resolve resolves a type reference against the manifest's own types.
func (l *linker) resolve(path, ref string) *descriptor.Type {
	t, err := l.snap.Resolve(ref)
	if err != nil {
		l.errorf(path, "%v", err)
		return nil
	}

	if t == nil {
		l.res.AddError(diagnostic.CodeInvalidManifest,
			fmt.Sprintf("type %q is not declared in the manifest", ref), "", path,
			match.Suggest(ref, l.snap.Names(), 3)...)
	}

	return t
}

func (l *linker) errorf(path, format string, args ...any) {
	l.res.AddError(diagnostic.CodeInvalidManifest, fmt.Sprintf(format, args...), "", path)
}

func typePath(i int) string {
	return fmt.Sprintf("types[%d]", i)
}

func accessor(def *AccessorDef) *descriptor.Accessor {
	if def == nil {
		return nil
	}

	access, _ := descriptor.ParseAccessibility(def.Access)

	return &descriptor.Accessor{Access: access}
}

func params(defs []ParamDef) []descriptor.Param {
	var out []descriptor.Param
	for _, p := range defs {
		out = append(out, descriptor.Param{
			Name: p.Name,
			Type: descriptor.TypeRef{Name: p.Type, Short: p.Short},
		})
	}

	return out
}

// returnType maps "" and "void" to nil.
func returnType(name string) *descriptor.TypeRef {
	if name == "" || name == "void" {
		return nil
	}

	return &descriptor.TypeRef{Name: name}
}

// awaitedType returns the explicit awaited type, or the type argument of a
// Task<T> or ValueTask<T> return. A plain Task awaits nothing.
func awaitedType(def *MemberDef) *descriptor.TypeRef {
	if def.Awaited != "" {
		return &descriptor.TypeRef{Name: def.Awaited}
	}

	open := strings.IndexByte(def.Returns, '<')
	if open < 0 || !strings.HasSuffix(def.Returns, ">") {
		return nil
	}

	outer := def.Returns[:open]
	if i := strings.LastIndexByte(outer, '.'); i >= 0 {
		outer = outer[i+1:]
	}

	if outer != "Task" && outer != "ValueTask" {
		return nil
	}

	return &descriptor.TypeRef{Name: strings.TrimSpace(def.Returns[open+1 : len(def.Returns)-1])}
}

// baseCycle reports whether t's base chain loops.
func baseCycle(t *descriptor.Type) bool {
	seen := map[*descriptor.Type]bool{t: true}

	for b := t.Base; b != nil; b = b.Base {
		if seen[b] {
			return true
		}

		seen[b] = true
	}

	return false
}
