package descriptor

import (
	"strings"

	"mock-generator/internal/common"
)

// TypeID uniquely identifies a type by its namespace and display name.
type TypeID struct {
	Namespace string // e.g., "Example" or "mock-generator/examples/calculator"
	Name      string // e.g., "IExternalSystemService", "Outer.Inner", "IAgent<T>"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	return common.QualifiedName(t.Namespace, t.Name)
}

// TypeKind distinguishes interfaces from classes.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindInterface          // all members implementable
	TypeKindClass              // only abstract/virtual members implementable
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindInterface:
		return "interface"
	case TypeKindClass:
		return "class"
	default:
		return common.UnknownStr
	}
}

// ParseTypeKind parses the String form of a TypeKind.
func ParseTypeKind(s string) TypeKind {
	switch strings.ToLower(s) {
	case "interface":
		return TypeKindInterface
	case "class":
		return TypeKindClass
	default:
		return TypeKindUnknown
	}
}

// Accessibility is the declared visibility of a type or member.
type Accessibility int

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessProtectedAndInternal // family-and-assembly
	AccessProtected
	AccessInternal
	AccessProtectedOrInternal // family-or-assembly
	AccessPublic
)

// String returns the keyword-ish name of an Accessibility.
func (a Accessibility) String() string {
	switch a {
	case AccessNotApplicable:
		return "not-applicable"
	case AccessPrivate:
		return "private"
	case AccessProtectedAndInternal:
		return "protected-and-internal"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessProtectedOrInternal:
		return "protected-or-internal"
	case AccessPublic:
		return "public"
	default:
		return common.UnknownStr
	}
}

// ParseAccessibility parses the String form of an Accessibility.
// The empty string maps to AccessNotApplicable.
func ParseAccessibility(s string) (Accessibility, bool) {
	switch strings.ToLower(s) {
	case "", "not-applicable":
		return AccessNotApplicable, true
	case "private":
		return AccessPrivate, true
	case "protected-and-internal", "private-protected":
		return AccessProtectedAndInternal, true
	case "protected":
		return AccessProtected, true
	case "internal":
		return AccessInternal, true
	case "protected-or-internal", "protected-internal":
		return AccessProtectedOrInternal, true
	case "public":
		return AccessPublic, true
	default:
		return AccessNotApplicable, false
	}
}

// TypeRef references a value type used by a member signature.
type TypeRef struct {
	Name  string // fully qualified display, e.g. "int", "System.Collections.Generic.IList<System.IO.MemoryStream>"
	Short string // short metadata name used for overload names, e.g. "Int32", "IList"
	// Awaited is the unwrapped result type of an awaitable return type
	// (Task<T> → T). Nil for non-awaitable types and for plain Task.
	Awaited *TypeRef
	// Elems are the components of a result tuple such as "(float64, error)".
	Elems []TypeRef
	// Qualified is Name with full import paths as package qualifiers,
	// e.g. "*mock-generator/examples/calculator.Result". Only Go
	// descriptors set it.
	Qualified string
	// Imports lists the packages Qualified refers to, sorted by path.
	Imports []Import
}

// Import is a package a Go type reference refers to.
type Import struct {
	Path string
	Name string // declared package name, which may differ from the last path element
}

// ShortName returns Short, falling back to the last identifier of Name.
func (r TypeRef) ShortName() string {
	if r.Short != "" {
		return r.Short
	}

	return shortFromDisplay(r.Name)
}

// keywordAliases maps keyword type names to their metadata names.
var keywordAliases = map[string]string{
	"bool":    "Boolean",
	"byte":    "Byte",
	"sbyte":   "SByte",
	"char":    "Char",
	"decimal": "Decimal",
	"double":  "Double",
	"float":   "Single",
	"int":     "Int32",
	"uint":    "UInt32",
	"long":    "Int64",
	"ulong":   "UInt64",
	"short":   "Int16",
	"ushort":  "UInt16",
	"object":  "Object",
	"string":  "String",
}

// shortFromDisplay strips namespaces and generic arguments from a display
// name: "System.Collections.Generic.IList<int>" → "IList", "int" → "Int32",
// "int[]" → "Int32Array".
func shortFromDisplay(name string) string {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "global::"), "?")

	suffix := ""
	if strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
		suffix = "Array"
	}

	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}

	if i := strings.LastIndexAny(name, "./*"); i >= 0 {
		name = name[i+1:]
	}

	if alias, ok := keywordAliases[name]; ok {
		return alias + suffix
	}

	return common.Capitalize(name) + suffix
}

// Param is a method parameter.
type Param struct {
	Name string
	Type TypeRef
}

// MemberKind tags the Member union.
type MemberKind int

const (
	MemberKindMethod MemberKind = iota
	MemberKindProperty
)

// String returns a human-readable member kind.
func (k MemberKind) String() string {
	switch k {
	case MemberKindMethod:
		return "method"
	case MemberKindProperty:
		return "property"
	default:
		return common.UnknownStr
	}
}

// Accessor is a property getter or setter.
type Accessor struct {
	// Access is the accessor's own accessibility; AccessNotApplicable
	// inherits the property's accessibility.
	Access Accessibility
}

// Member describes a method or a property of a Type.
type Member struct {
	Kind     MemberKind
	Name     string
	Access   Accessibility
	Static   bool
	Abstract bool
	Virtual  bool
	Override bool // overrides an inherited member; overridable unless Sealed
	Sealed   bool
	Implicit bool // compiler-synthesized (backing accessors, implicit constructors)
	Owner    *Type

	// Method part.
	Params      []Param
	Returns     *TypeRef // nil for void
	Async       bool
	Constructor bool

	// Property part.
	Value  TypeRef
	Getter *Accessor
	Setter *Accessor
}

// IsMethod reports whether the member is a (non-constructor) method.
func (m *Member) IsMethod() bool {
	return m.Kind == MemberKindMethod && !m.Constructor
}

// IsProperty reports whether the member is a property.
func (m *Member) IsProperty() bool {
	return m.Kind == MemberKindProperty
}

// Overridable reports whether a synthetic subclass may legally supply
// its own implementation of this member.
func (m *Member) Overridable() bool {
	if m.Owner != nil && m.Owner.Kind == TypeKindInterface {
		return true
	}

	return m.Abstract || m.Virtual || (m.Override && !m.Sealed)
}

// Signature returns the parameter-type identity of a method, e.g. "(int,int)".
func (m *Member) Signature() string {
	var sb strings.Builder

	sb.WriteByte('(')

	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(p.Type.Name)
	}

	sb.WriteByte(')')

	return sb.String()
}

// String returns a readable member label, e.g. "Example.ICalc.Add(int,int)".
func (m *Member) String() string {
	owner := ""
	if m.Owner != nil {
		owner = m.Owner.ID.String() + "."
	}

	if m.Kind == MemberKindProperty {
		return owner + m.Name
	}

	return owner + m.Name + m.Signature()
}

// EffectiveReturn returns the type a mock delegate must produce: the
// awaited type for async members, the declared type otherwise. Nil means void.
func (m *Member) EffectiveReturn() *TypeRef {
	if m.Returns == nil {
		return nil
	}

	if m.Async {
		return m.Returns.Awaited
	}

	return m.Returns
}

// Type describes a target or ancestor type.
type Type struct {
	ID       TypeID
	Kind     TypeKind
	Abstract bool
	// Builtin marks root types (System.Object and friends) that the
	// hierarchy walk never enters.
	Builtin  bool
	Access   Accessibility
	Assembly string
	// Package is the declared Go package name of Go types. Empty for
	// manifest types.
	Package    string
	Base       *Type
	Interfaces []*Type
	Members    []*Member
}

// IsInterface reports whether the type is an interface.
func (t *Type) IsInterface() bool {
	return t.Kind == TypeKindInterface
}

// IsClass reports whether the type is a class.
func (t *Type) IsClass() bool {
	return t.Kind == TypeKindClass
}

// Constructors returns the declared constructors of the type.
func (t *Type) Constructors() []*Member {
	var ctors []*Member

	for _, m := range t.Members {
		if m.Kind == MemberKindMethod && m.Constructor && !m.Static {
			ctors = append(ctors, m)
		}
	}

	return ctors
}

// String returns the qualified display name of the type.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return t.ID.String()
}
