package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"

	"mock-generator/internal/descriptor"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a descriptor snapshot.
type Analyzer struct {
	dir    string
	logger *slog.Logger

	snap  *descriptor.Snapshot
	cache map[*types.TypeName]*descriptor.Type // handles recursive and shared types
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory packages are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		snap:   descriptor.NewSnapshot(),
		cache:  make(map[*types.TypeName]*descriptor.Type),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and describes their named
// interfaces and structs. Patterns are standard Go package patterns
// (e.g., "./...", "mock-generator/examples/calculator"). Types embedded
// from other packages are described too.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*descriptor.Snapshot, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	a.logger.Info("packages loaded", "packages_count", len(pkgs))

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.snap, nil
}

// Snapshot returns the descriptors built so far.
func (a *Analyzer) Snapshot() *descriptor.Snapshot {
	return a.snap
}

// processPackage describes a loaded package's named types, then attaches
// its constructors.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil {
		return errors.New("no type information")
	}

	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}

		if _, err := a.describe(tn); err != nil {
			return err
		}
	}

	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !strings.HasPrefix(name, "New") {
			continue
		}

		a.attachConstructor(fn)
	}

	return nil
}

// describe returns the descriptor of a named interface or struct, building
// it on first sight. Other named types and generic types yield nil.
func (a *Analyzer) describe(tn *types.TypeName) (*descriptor.Type, error) {
	if cached, ok := a.cache[tn]; ok {
		return cached, nil
	}

	named, ok := tn.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil, nil
	}

	var kind descriptor.TypeKind

	switch named.Underlying().(type) {
	case *types.Interface:
		kind = descriptor.TypeKindInterface
	case *types.Struct:
		kind = descriptor.TypeKindClass
	default:
		return nil, nil
	}

	pkgPath, pkgName := "", ""
	if tn.Pkg() != nil {
		pkgPath, pkgName = tn.Pkg().Path(), tn.Pkg().Name()
	}

	t := &descriptor.Type{
		ID:       descriptor.TypeID{Namespace: pkgPath, Name: tn.Name()},
		Kind:     kind,
		Access:   access(tn.Exported()),
		Assembly: pkgPath,
		Package:  pkgName,
	}

	// registered before members so recursive references resolve
	a.cache[tn] = t

	if err := a.snap.Add(t); err != nil {
		return nil, err
	}

	var err error

	switch ut := named.Underlying().(type) {
	case *types.Interface:
		err = a.describeInterface(t, ut)
	case *types.Struct:
		err = a.describeStruct(t, named, ut)
	}

	if err != nil {
		return nil, err
	}

	a.logger.Debug("described type", "type", t.String(), "kind", t.Kind.String(),
		"members", len(t.Members), "interfaces", len(t.Interfaces))

	return t, nil
}

func (a *Analyzer) describeInterface(t *descriptor.Type, iface *types.Interface) error {
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		embedded, err := a.describeEmbedded(iface.EmbeddedType(i))
		if err != nil {
			return err
		}

		if embedded != nil && embedded.IsInterface() {
			t.Interfaces = append(t.Interfaces, embedded)
		}
	}

	for i := 0; i < iface.NumExplicitMethods(); i++ {
		fn := iface.ExplicitMethod(i)
		m := method(t, fn)
		m.Abstract = true

		// unexported methods can only be implemented inside their package
		if !fn.Exported() {
			m.Access = descriptor.AccessPrivate
		}

		t.Members = append(t.Members, m)
	}

	return nil
}

func (a *Analyzer) describeStruct(t *descriptor.Type, named *types.Named, st *types.Struct) error {
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		if !field.Embedded() {
			if field.Exported() {
				t.Members = append(t.Members, property(t, field))
			}

			continue
		}

		embedded, err := a.describeEmbedded(field.Type())
		if err != nil {
			return err
		}

		switch {
		case embedded == nil:
		case embedded.IsInterface():
			t.Interfaces = append(t.Interfaces, embedded)
		case t.Base == nil:
			t.Base = embedded
		default:
			a.logger.Debug("ignoring additional embedded struct", "type", t.String(), "embedded", embedded.String())
		}
	}

	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		m := method(t, fn)

		// an embedding type can only shadow exported methods
		if fn.Exported() {
			m.Virtual = true
		} else {
			m.Access = descriptor.AccessPrivate
		}

		t.Members = append(t.Members, m)
	}

	return nil
}

// describeEmbedded describes an embedded field or interface type,
// dereferencing pointers.
func (a *Analyzer) describeEmbedded(t types.Type) (*descriptor.Type, error) {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		t = p.Elem()
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil, nil
	}

	return a.describe(named.Obj())
}

// attachConstructor records fn as a constructor of the struct it returns
// when it is named after it: NewService returning Service or *Service.
func (a *Analyzer) attachConstructor(fn *types.Func) {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Results().Len() == 0 {
		return
	}

	result := types.Unalias(sig.Results().At(0).Type())
	if p, ok := result.(*types.Pointer); ok {
		result = types.Unalias(p.Elem())
	}

	named, ok := result.(*types.Named)
	if !ok || fn.Name() != "New"+named.Obj().Name() {
		return
	}

	t := a.cache[named.Obj()]
	if t == nil || !t.IsClass() {
		return
	}

	t.Members = append(t.Members, &descriptor.Member{
		Kind:        descriptor.MemberKindMethod,
		Access:      access(fn.Exported()),
		Owner:       t,
		Params:      params(sig),
		Returns:     resultRef(sig.Results()),
		Constructor: true,
	})
}

func method(owner *descriptor.Type, fn *types.Func) *descriptor.Member {
	sig := fn.Type().(*types.Signature)

	return &descriptor.Member{
		Kind:    descriptor.MemberKindMethod,
		Name:    fn.Name(),
		Access:  access(fn.Exported()),
		Owner:   owner,
		Params:  params(sig),
		Returns: resultRef(sig.Results()),
	}
}

func property(owner *descriptor.Type, field *types.Var) *descriptor.Member {
	return &descriptor.Member{
		Kind:   descriptor.MemberKindProperty,
		Name:   field.Name(),
		Access: access(field.Exported()),
		Owner:  owner,
		Value:  typeRef(field.Type()),
		Getter: &descriptor.Accessor{},
		Setter: &descriptor.Accessor{},
	}
}

func access(exported bool) descriptor.Accessibility {
	if exported {
		return descriptor.AccessPublic
	}

	return descriptor.AccessInternal
}
